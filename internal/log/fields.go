package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "expense_id"
	FieldVendor     = "vendor"
	FieldProduct    = "product"
	FieldRate       = "rate"
	FieldQuantity   = "quantity"
	FieldTotal      = "total"
	FieldCount      = "count"
	FieldBackend    = "backend"
	FieldStorageKey = "storage_key"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentCatalog   = "catalog"
	ComponentWorkbook  = "workbook"
	ComponentAuth      = "auth"
	ComponentStore     = "store"
	ComponentBackend   = "backend"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpImport   = "import"
	OpExport   = "export"
	OpSignIn   = "sign_in"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
