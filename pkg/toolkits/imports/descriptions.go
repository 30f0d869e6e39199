package imports

const synonyms = `
- Product: product, chemical, substance, SDS assigned to a location
- Location: location, department, site, workplace
- Hazardous: hazardous, restricted, restricted list, restricted ingredient, restricted component
- SDS Request: Unmatched product/SDS, SDS request, product that are not linked to any SDS
`

const uploadPDFDescription = `Generate an upload URL for user to upload an SDS PDF file to a specific location.

When to call:
    - User ask to upload an SDS PDF file to a specific location.
    - User have a SDS pdf file and want to add it but does not find it on global database.

When not to call:
    - When can not define the location_id from chat context (Ask user to provide or create new).
    - User does not have the SDS PDF file (Ask user first).

Usage example (One-line):
    - I want to add a new SDS to <location name> but I do not find it on global database.
    - Upload this SDS file to <location name>.
    - I have a SDS file, help me add it to <location name>.

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - location_id (str): Unique identifier of the target location for the SDS

Important Guidelines:
    - If location ID is not available, ask user to provide location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match
    - Provide the upload_url to user and wait for confirmation that upload is complete
    - After user confirms upload, call check_upload_sds_pdf_status with request_id to monitor the extraction and processing status`

const addSDSByURLDescription = `Adding SDS by URL to a specific location.

When to call:
    - User ask to upload an SDS link to a specific location.
    - User have a SDS pdf link/url and want to add it but does not find it on global database.

When not to call:
    - When can not define the location_id from chat context (Ask user to provide or create new).
    - User does not have the SDS pdf link/url (Ask user first).

Usage example (One-line):
    - Add this SDS link/url to <location name>.
    - Upload this SDS link/url to <location name>.
    - I have a SDS link/url, help me add it to <location name>.

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - The URL content must be a pdf

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - url (str): SDS pdf URL
    - location_id (str): Unique identifier of the target location for the SDS

Important Guidelines:
    - If location ID is not available, ask user to provide location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match
    - After user confirms upload, call check_upload_sds_pdf_status with request_id to monitor the extraction and processing status`

const checkPDFStatusDescription = `Check the processing status for an uploaded SDS PDF file.

When to call:
    - User ask to check the status of the uploaded SDS PDF file.
    - Automatically called when previous tool need to check the status of the uploaded SDS PDF file.

When not to call:
    - When can not define the request_id from chat context (Ask user to provide).
    - Do not use for checking the status of the uploaded Product List Excel file (Call tool check_upload_product_list_excel_data_status instead).

Usage example (One-line):
    - Check the status of the uploaded SDS PDF file.
    - How is my previous upload progress?
    - Does the upload finished?
    - Are my SDS pdf file/link/url added to the location?

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - Must be called after add_sds_by_uploading_sds_pdf_file or add_sds_by_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - request_id (str): Upload request identifier from add_sds_by_uploading_sds_pdf_file

Important Guidelines:
    - If progress is not 100, call this tool again after a brief wait
    - If progress is 100, the SDS has been added to the location`

const uploadListDescription = `Generate an upload URL for user to upload a Product List Excel file for bulk SDS import.

When to call:
    - User ask to upload Excel file for their products/SDSs.
    - User want to import products/SDSs from Excel file.
    - User want to create product/SDS requests.

When not to call:
    - User does not have the Excel file (Ask user first).

Usage example (One-line):
    - Upload this Excel file of products/SDSs.
    - I have a Excel file of products/SDSs, help me import it.
    - Import products/SDSs from file.

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool

Important Guidelines:
    - Display the upload_url to user for accessing the upload form
    - Wait for user confirmation that they have finished uploading the Excel file
    - After user confirms upload, call validate_upload_product_list_excel_data with request_id to validate and map the Excel columns`

const validateListDescription = `Validate and extract column information from uploaded Product List Excel file.

When to call:
    - User ask to validate the uploaded Product List Excel file after uploading.
    - Automatically called when previous tool need to validate the uploaded Product List Excel file.

When not to call:
    - When can not define the request_id from chat context (Ask user to provide).

Usage example (One-line):
    - Validate the uploaded file.
    - How is my previous upload progress?
    - Does the upload finished?
    - Are my products/SDSs imported from the Excel file?

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - Must be called after upload_product_list_excel_file tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - request_id (str): Upload request identifier from upload_product_list_excel_file

Important Guidelines:
    - Only call this after user has uploaded Excel file via upload_product_list_excel_file
    - If request not found, ask user to follow upload_product_list_excel_file instructions again
    - Automatically map extracted columns to required fields (product_name, supplier_of_sds, etc.)
    - If unable to auto-map, ask user to manually select matching columns
    - After mapping confirmation, call process_upload_product_list_excel_data`

const processListDescription = `Process validated Product List Excel data and import products into inventory.

When to call:
    - Automatically called when previous tool need to process the uploaded Product List Excel data.
    - User confirmed the excel file column mapping from validate step.
    - User ask to process the uploaded Product List Excel data.

When not to call:
    - When can not define the request_id from chat context (Ask user to provide).
    - When can not define the auto_match_product from chat context (Ask user to provide).

Usage example (One-line):
    - Process the uploaded Product List Excel data.
    - How is my previous upload progress?
    - Does the upload finished?
    - Are my products/SDSs imported from the Excel file?

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - Must be called after validate_upload_product_list_excel_data tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - request_id (str): Upload request identifier from validate step
    - mapped_data (dict): Column mapping from Excel columns to system fields from validate step.
    - auto_match_product (bool): Whether to automatically match products to SDSs in global database

Important Guidelines:
    - Only call after validate_upload_product_list_excel_data has confirmed column mapping
    - If request_id or mapped_data missing, restart from upload_product_list_excel_file
    - Always ask user if they want automatic matching enabled
    - After processing, call check_upload_product_list_excel_data_status to monitor progress`

const checkListStatusDescription = `Monitor the processing status for imported Product List Excel data.

When to call:
    - User ask to check the status of their imported file.
    - Automatically called when previous tool need to check the status of uploaded file.

When not to call:
    - When can not define the product_list_id from chat context (Ask user to provide).

Usage example (One-line):
    - How is my previous upload progress?
    - Does the upload finished?
    - Are my products/SDSs imported from the Excel file?

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - Must be called after process_upload_product_list_excel_data tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_list_id (str): Product list identifier from process_upload_product_list_excel_data

Important Guidelines:
    - Only call after process_upload_product_list_excel_data has started import
    - If product_list_id not found, restart from upload_product_list_excel_file
    - If progress shows completion (N/N products processed), display final results
    - If progress incomplete, show current status and call this tool again after brief wait
    - If unmatched products exist, suggest calling get_sds_request to list them`

const getSDSRequestDescription = `Retrieve SDS requests that have not been matched to any SDS in the global database.

When to call:
    - User ask to list all unmatched products/SDS requests.
    - Automatically called when previous tool need to list all unmatched products/SDS requests.

Usage example (One-line):
    - Show me all request from the uploaded file.
    - List all unmatched products/SDS requests.
    - Find request <keyword>
    - Show me all products that does not link to any SDS.
    - List all un-linked products/SDS requests.

Synonyms:` + synonyms + `    - Unmatched SDSs, unmatched products, SDS requests, substance requests.

Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - search (str, optional): Search term to filter requests. Default: "" (all requests)
    - product_list_id (str, optional): Filter by specific import job ID. Default: "" (all jobs)

Important Guidelines:
    - If user wants to match SDS request, call search_sds with keyword: "supplier_name + product_name" from the request
    - Display product_name, supplier_name, and other request details clearly
    - Guide user through match_sds_request tool to link found SDSs`

const matchSDSRequestDescription = `Link a SDS request (unmatched product) to an SDS from the SDS Managers 16 millions SDS global database.

When to call:
    - User ask to match/link a SDS request to a global SDS.
    - Automatically called when previous tool need to match/link a SDS request to a global SDS.

When not to call:
    - When can not define the request_id from chat context (Ask user to provide).
    - When can not define the sds_id from chat context (Ask user to provide).
    - When can not define the use_sds_data from chat context (Ask user to provide).

Usage example (One-line):
    - Match this request to the SDS <SDS name>.
    - Link this product to the SDS <SDS name> with SDS data.
    - Match this request to the SDS <SDS name> but keep current request data.

Synonyms:` + synonyms + `    - Match unmatched SDS, link product request

Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - request_id (str): ID of the unmatched product request
    - sds_id (str): ID of the SDS to match from global database
    - use_sds_data (bool): Whether to use SDS data or keep original request data

Important Guidelines:
    - If request_id is not available, ask user to provide SDS/product name, then call get_sds_request with the name as search keyword, always ask user to choose if multiple results are found
    - If SDS ID is not available, ask user to provide SDS name
    - When user provides SDS name, call search_sds with the SDS name as keyword to get id, always ask user to choose if multiple results are found
    - Show comparison of product name and supplier between request and SDS
    - Ask user whether to use SDS data (more accurate) or keep request data`

const getUploadedListDescription = `Get the list of all product lists imported from the Excel files.

When to call:
    - User ask to get the list of all product lists imported from the Excel files.

Usage example (One-line):
    - Show me all product lists imported.
    - List all excel files uploaded.

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - search_keyword (str, optional): Search term to filter product lists. Default: "" (all product lists)`

const listSummaryDescription = `Get the summary of a product list imported from the Excel file.

When to call:
    - User ask to get the summary of a product list imported from the Excel file.

When not to call:
    - When can not define the product_list_id from chat context (Ask user to provide).

Usage example (One-line):
    - Show me the summary of the product list <product list name>.
    - Show me information of the uploaded excel file <excel file name>.

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - product_list_id (str): ID of the product list imported from the Excel file

Important Guidelines:
    - If product list ID is not available, ask user to provide the product list name
    - When user provides product list name, call get_uploaded_product_list with the product list name as keyword to get id, always ask user to choose if multiple product lists match`
