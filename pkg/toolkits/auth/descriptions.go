package auth

const synonyms = `
- Product: product, chemical, substance, SDS assigned to a location
- Location: location, department, site, workplace
- Hazardous: hazardous, restricted, restricted list, restricted ingredient, restricted component
- SDS Request: Unmatched product/SDS, SDS request, product that are not linked to any SDS
`

const mcpOverview = `
The purpose of this MCP is to help new customers set up and manage their Safety Data Sheet (SDS) Library using SDS Manager.
The APIs in this collection allow an AI assistant to guide users through the entire onboarding process, from understanding their organization's needs to creating a structured, compliant, and accessible SDS library.

The assistant should begin by gathering key context from the user:
- What type of business they operate
- Whether they have multiple locations or sites
- Approximately how many products/chemicals they use that require SDSs

Based on the answers, the assistant will determine which setup method fits best. There are four primary ways to create an SDS library using these APIs:
1. Import existing SDS PDF files: if the customer already has their SDSs, the assistant can upload them directly using add_sds_by_uploading_sds_pdf_file or add_sds_by_url.
2. Import a product list from Excel: when the customer has a spreadsheet of products/chemicals, the assistant can use upload_product_list_excel_file to upload the file.
    - Each row in the imported Excel file creates an SDS Request (if user not allow auto matching or system unable to find matching SDS), representing a product that requires an SDS but doesn't yet have one linked.
    - The assistant can retrieve pending SDS Requests using get_sds_request, search for matching SDSs in the global database using search_sds, and link them using match_sds_request.
    - When a match is confirmed, the SDS is automatically added to the customer's SDS library.
3. Digitize paper binders: if the user has printed SDSs, they can search them in the SDS Manager database and add it when a match is found, or scan and upload missing ones using add_sds_by_uploading_sds_pdf_file.
4. Build from scratch: if no overview exists, the user can take photos of product labels, extract text with OCR, and search for each product using search_sds before adding it with add_sds.

For organizations with multiple sites, the assistant can use get_locations and add_location to create and manage a hierarchical structure. Each SDS can be assigned to a location or moved and copied between sites using move_sds and copy_sds_to_another_location.

The remaining APIs support the complete SDS management lifecycle:
- Authentication and access control: get_login_url, check_auth_status, get_permissions, get_limits
- SDS retrieval and detail viewing: search_sds, show_sds_detail, get_customer_products, show_customer_product_detail, get_hazardous_sds_on_restricted_lists
- File and data import management: validate_upload_product_list_excel_data, process_upload_product_list_excel_data, check_upload_product_list_excel_data_status
- Maintenance and compliance: archive_sds, get_hazardous_sds_on_restricted_lists, edit_product_data, get_sds_request, match_sds_request, get_uploaded_product_list, get_product_list_summary

The AI assistant's primary objectives are to:
1. Collect setup information and guide the user through the correct onboarding path
2. Automate the import and linking of SDSs through uploads and database searches
3. Organize SDSs by site and chemical type
4. Ensure the resulting SDS library is complete, accessible, and compliant with chemical safety regulations.

The assistant should always aim to simplify the user experience, automating manual tasks like file import, SDS matching, and location setup, while ensuring the user ends with a properly organized, searchable SDS library ready for employee access.

Synonyms text:
` + synonyms

var generalPermissionMapping = map[string]string{
	"access_mcp_chat_agent": "Required for accessing all MCP tools except get_login_url, check_auth_status, get_permissions, get_limits",
	"add_locations":         "Create new location in the organization's location hierarchy",
	"import_product_list":   "Import product list from Excel file",
}

var locationPermissionMapping = map[string]string{
	"add_substance":          "Add SDS to an location",
	"allowed_to_archive_SDS": "Archive SDS from a location",
	"move_sds":               "Move SDS to another location",
	"edit_sds":               "Edit SDS details",
}

const overviewToolDescription = `This tool is used to get an overview of this MCP and its purpose to guide the AI agent.

Important Guidelines:
    - Call this tool at the beginning of the conversation

Return an overview of this MCP and its purpose to guide the AI agent.`

const loginURLDescription = `To login to SDS Manager, you need to get session ID and login URL first.
This tool initialize session ID (If not provided) & generate an login URL for user to login with their API key.

When to call:
    - User are not logged in
    - User ask for new login session
    - User want to change to different API key

When not to call:
    - User has already logged in (Have session_handle from any previous tool)

Usage example (One-line):
    - I need to login to SDS Manager
    - I want to change to different API key
    - How can I access to SDS Manager

Parameters:
    - session_handle (Optional[UUID]): Session UUID from the previous tool. None for new session.

Prerequisites:
    - Must call get_mcp_overview tool at the beginning of the conversation

Important Guidelines:
    - After user confirm finished login, pass session_handle for all other tools`

const authStatusDescription = `Check if the current session is authenticated.

When to call:
    - User has already logged in (Have session_handle from any previous tool)
    - User ask for their authentication status

When not to call:
    - User are not logged in (Not have session_handle from any previous tool)

Usage example (One-line):
    - Am I logged in?
    - Are you logged in?
    - What is my status on SDS Manager?
    - Can I use SDS Manager now?

Parameters:
    - session_handle (UUID): Session UUID from the previous tool.`

const permissionsDescription = `Get permissions for the current user session generally or for a specific location.

When to call:
    - After successfully logged in on check_auth_status tool
    - User ask for permissions
    - User ask for permissions for a specific location

Usage example (One-line):
    - What can I do on SDS Manager?
    - What can I do on SDS Manager for a specific location?
    - Am I allowed to do <action> on SDS Manager?

Note: General permission is different from location permission.

- General permission: access_mcp_chat_agent, add_locations, import_product_list
- Location permission: add_substance, allowed_to_archive_SDS, move_sds, edit_sds

Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - location_id (str, optional): ID of the location to get permissions for. Default: None

Important Guidelines:
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const limitsDescription = `Get total and used limits for the current user session.
If not provided, the tool can be used unlimitedly.

When to call:
    - After successfully logged in on check_auth_status tool
    - Tool search_sds got error with error code SUBSCRIPTION_CHAT_AGENT_SEARCH_LIMIT_EXCEEDED
    - Tool show_sds_detail got error with error code SUBSCRIPTION_CHAT_AGENT_GET_SDS_LIMIT_EXCEEDED
    - User ask for search limitations

Usage example (One-line):
    - Why I got limitation error when searching SDSs?
    - Why I got limitation error when showing SDS details?
    - How many searches I can do?
    - How many SDS details I can show?
    - Show me all limits/threshold for my session

Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool`
