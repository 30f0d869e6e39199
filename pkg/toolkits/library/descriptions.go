package library

const synonyms = `
- Product: product, chemical, substance, SDS assigned to a location
- Location: location, department, site, workplace
- Hazardous: hazardous, restricted, restricted list, restricted ingredient, restricted component
- SDS Request: Unmatched product/SDS, SDS request, product that are not linked to any SDS
`

const getLocationsDescription = `Retrieve the complete location hierarchy (tree structure) for the current user's organization.

When to call:
    - User ask to get locations tree/hierarchy.
    - User want to find a specific location by name or id.

Usage example (One-line):
    - List all locations
    - Show me my locations tree/hierarchy
    - Show me location <location name>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - location_name (str, optional): Name of the location to filter. Default: None
    - location_id (str, optional): ID of the location to filter. Default: None

Important Guidelines:
    - If success, display results from data field in a tree/hierarchical structure (similar to file explorer)
    - If error, notify user about the error and follow instruction field if existed.`

const addLocationDescription = `Create a new location in the organization's location hierarchy.

When to call:
    - User ask to add/create a new location.

When not to call:
    - User not providing the location name.
    - Unable to identify the created location is root or have parent location.

Usage example (One-line):
    - Add new location <location name> to the location <parent location name>
    - Create a root location <location name>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - name (str): Name of the new location (e.g., "Warehouse A", "Lab 3")
    - parent_location_id (str, optional): ID of parent location. None for root-level locations.

Important Guidelines:
    - parent_location_id should be None when creating a root location
    - If user doesn't mention parent location, ask whether it's a root location
    - If not root, ask user to provide parent location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const searchSDSDescription = `Search for Safety Data Sheets (SDS) in the SDS Managers 16 millions global SDS database.

When to call:
    - User ask to search SDSs in the global database
    - Automatically called when previous tool need sds_id but user provide SDS name.

When not to call:
    - User want to search SDSs in their own library/inventory (Call tool get_customer_products instead)
    - Search usage reach limits in get_limits tool (Call tool get_limits to check limits)

Usage example (One-line):
    - Find SDS <SDS name>
    - Do you have SDS <SDS name>?
    - Search SDS <SDS name> in the global database
    - Find SDS <SDS name> of <manufacturer name>
    - Find SDS <SDS name> in <language> and <region>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - If scope is all, check limits with get_limits tool before calling this tool and display the limits to the user

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - scope ("all" | "in_used"): Search scope (all, in_used)
    - keyword (str): Search term (product name, manufacturer, etc.)
    - language_code (str, optional): Language filter (e.g., "en", "es")
    - region_code (str, optional): Region filter (e.g., "US", "EU")
    - location_id (str, optional): Location ID to filter results for in_used scope. Default: None

Important Guidelines:
    - Auto set scope according to the user's request.
    - Display results in a table with columns: ID, Product Name, Product Code, Manufacturer Name, Revision Date, Language, Regulation Area, Public Link, Discovery Link
    - Auto-convert language/region names to codes (e.g., "English" -> "en", "Europe" -> "eu")
    - Do not use IDs as search keywords
    - location_id is only available for in_used scope
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match

Decision workflow for scope:
    - If user says "search my library" -> scope=in_used
    - If user says "search in location <location name>" -> scope=in_used
    - If user says "search global database" -> scope=all
    - Otherwise -> scope=all`

const showSDSDetailDescription = `Retrieve detailed information for a specific SDS from the global database.

When to call:
    - User ask to show details of a public SDS from global database.
    - Automatically called when previous tool need information of a specific SDS

When not to call:
    - User want to show detail of a product in their own library/inventory instead of SDS details (Call tool show_customer_product_detail instead)
    - Show SDS details usage reach limits in get_limits tool (Call tool get_limits to check limits)
    - When can not define the sds_id from chat context (Ask user to provide).

Usage example (One-line):
    - Show me details/information of the SDS <SDS name>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool
    - Check limits with get_limits tool before calling this tool and display the limits to the user

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - sds_id (str): Unique identifier of the SDS to retrieve

Important Guidelines:
    - If SDS ID is not available, ask user to provide SDS name
    - When user provides SDS name, call search_sds with the SDS name as keyword to get id, always ask user to choose if multiple results are found
    - Display any error messages to the user`

const getCustomerProductsDescription = `Get all products (SDSs assigned to locations) in the customer's library/inventory.

When to call:
    - User ask to search products in their own library/inventory
    - Automatically called when previous tool need product_id but user provide product name only.

When not to call:
    - User ask for hazardous products/SDSs (Call tool get_hazardous_sds_on_restricted_lists instead).
    - User ask to find SDS without mentioning specific scope (Prior to call tool search_sds first)
    - User ask to find SDS from global database instead.

Usage example (One-line):
    - Find me the SDS <SDS name> in my library/inventory
    - List me all products/SDSs in location <location name>
    - Do I have this SDS in my library/inventory?
    - Show me all SDSs in my library/inventory
    - What products do I have in my library/inventory?
    - How many products do I have in my library/inventory?

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - keyword (str): Search term for filtering products (product name, manufacturer name, barcode, ufi, cas, product code, etc.)
    - language_code (str, optional): Language filter (e.g., "en", "es")
    - region_code (str, optional): Region filter (e.g., "US", "EU")
    - location_id (str, optional): Location ID to filter results. Default: None

Important Guidelines:
    - Do not use ID as search keywords
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const showProductDetailDescription = `Retrieve detailed information for a specific product (SDS assigned to a location) in the customer's inventory.

When to call:
    - User ask to show details of a product in their own library/inventory
    - Automatically called when previous tool need information for a specific product.

When not to call:
    - User ask to show details of a public SDS from global database instead.
    - When can not define the product_id from chat context (Ask user to provide).

Usage example (One-line):
    - Show me details/information of the product

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_id (str): Unique identifier of the product in customer's inventory

Important Guidelines:
    - If product ID is not available, ask user to provide the SDS/product name
    - When user provides product name, call get_customer_products with the product name as keyword to get id, always ask user to choose if multiple results are found
    - Display any error messages to the user`

const addSDSDescription = `Add an SDS from the global database to a specific location in the customer's inventory.

When to call:
    - User ask to add a SDS from global database to a specific location in their own library/inventory

When not to call:
    - When can not define the global sds_id from chat context (Ask user to provide).
    - When can not define the location_id from chat context (Ask user to provide or create new).

Usage example (One-line):
    - Add SDS <SDS name> to location/department/workplace <location name>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - sds_id (str): Unique identifier of the SDS from global database
    - location_id (str): Unique identifier of the target location
    - default_run (bool): Always set to True, only set to False when have instruction after calling this tool.

Important Guidelines:
    - If SDS ID is not available, ask user to provide SDS name
    - When user provides SDS name, call search_sds with the SDS name as keyword to get id, always ask user to choose if multiple results are found
    - If location ID is not available, ask user to provide location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const moveSDSDescription = `Move a product (SDS assigned to a location) to a different location.

When to call:
    - User ask to move a SDS from a specific location to another location in their own library/inventory
    - User ask to move a product to different location.

When not to call:
    - When can not define the product_id from chat context (Ask user to provide).
    - When can not define the location_id from chat context (Ask user to provide or create new).

Usage example (One-line):
    - Move SDS/product <SDS name> from <selected location name> to <target location name>
    - Move this SDS to location <target location name>

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_id (str): Unique identifier of the product to move
    - location_id (str): Unique identifier of the target location
    - default_run (bool): Always set to True, only set to False when have instruction after calling this tool.

Important Guidelines:
    - If product ID is not available, ask user to provide the SDS/product name
    - When user provides product name, call get_customer_products with the product name as keyword to get id, always ask user to choose if multiple results are found
    - If location ID is not available, ask user to provide location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const copySDSDescription = `Copy a product to another location, creating a duplicate with similar information.

When to call:
    - User ask to copy a SDS from a specific location to another location in their own library/inventory
    - User ask to copy a product to different location.

When not to call:
    - When can not define the product_id from chat context (Ask user to provide).
    - When can not define the location_id from chat context (Ask user to provide or create new).

Usage example (One-line):
    - Copy SDS/product <SDS name> on <selected location name> to <target location name>
    - Copy this SDS to location <target location name>
    - Add this SDS to location <target location name> with exactly same information

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_id (str): Unique identifier of the product to copy
    - location_id (str): Unique identifier of the target location
    - default_run (bool): Always set to True, only set to False when have instruction after calling this tool.

Important Guidelines:
    - If product ID is not available, ask user to provide the SDS/product name
    - When user provides product name, call get_customer_products with the product name as keyword to get id, always ask user to choose if multiple results are found
    - If location ID is not available, ask user to provide location name
    - If location name is provided, call get_locations with location_name parameter to get id, always ask user to choose if multiple locations match`

const archiveSDSDescription = `Archive a product (SDS assigned to a location), removing it from active inventory.

When to call:
    - User ask to archive a SDS from a specific location in their own library/inventory
    - User ask to archive a product.

When not to call:
    - When can not define the product_id from chat context (Ask user to provide).

Usage example (One-line):
    - Archive SDS/product <SDS name> on <selected location name>
    - Remove this SDS/product
    - Delete this SDS/product

Synonyms:` + synonyms + `    - archive product, delete product, remove product.

Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_id (str): Unique identifier of the product to archive
    - default_run (bool): Always set to True, only set to False when have instruction after calling this tool.

Important Guidelines:
    - If product ID is not available, ask user to provide the SDS/product name
    - When user provides product name, call get_customer_products with the product name as keyword to get id, always ask user to choose if multiple results are found
    - Confirm with user before archiving`

const editProductDataDescription = `Edit custom fields of a product (SDS assigned to a location) in the customer's inventory.

When to call:
    - User ask to edit/update/change/remove custom product name, chemical synonyms, or external system ID of a product.

When not to call:
    - When can not define the product_id from chat context (Ask user to provide).

Usage example (One-line):
    - Change the custom name of product <product name> to <new name>
    - Remove the external system ID of this product

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - product_id (str): Unique identifier of the product to edit
    - sds_pdf_product_name (str, optional): Product name override/custom name
    - chemical_name_synonyms (str, optional): Alternative names/synonyms for the chemical
    - external_system_id (str, optional): External reference/integration identifier

Update Rules:
    - To add or change a field: Provide the new value
    - To remove a field: Set value to empty string ""
    - At least one field must be provided for update
    - Example: sds_pdf_product_name="" will clear the custom product name

Supported Actions:
    - Add/change/remove custom product name
    - Add/change/remove chemical synonyms
    - Add/change/remove external system ID`

const hazardousDescription = `Retrieve or search for hazardous products (SDS assigned to a location) containing ingredients/components on regulatory restriction lists.

When to call:
    - User ask to list/search hazardous products/SDSs.
    - User want to see/search products/SDSs that are restricted by regulations.

Usage example (One-line):
    - Show me all hazardous products/SDSs
    - Find the hazardous product/SDS <product name>
    - List me all products/SDSs that are restricted by regulations

Synonyms:` + synonyms + `
Prerequisites:
    - Must have session_handle from get_login_url tool

Parameters:
    - session_handle (UUID): Session UUID from get_login_url tool
    - page (int, optional): Page number for pagination. Default: 1
    - page_size (int, optional): Results per page. Default: 10
    - keyword (str, optional): Search term to filter hazardous products. Default: "" (all hazardous)

Important Guidelines:
    - If user doesn't specify a keyword, use empty string to retrieve all hazardous SDSs`
