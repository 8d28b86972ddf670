package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "id"
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldUser       = "user"
	FieldBalance    = "balance"
	FieldEvent      = "event"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentRPC        = "rpc"
	ComponentStorage    = "storage"
	ComponentLedger     = "ledger"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentCategories = "categories"
)

// Operations defines standard operation names
const (
	OpAddExpense    = "add_expense"
	OpListExpenses  = "list_expenses"
	OpSummarize     = "summarize"
	OpEditExpense   = "edit_expense"
	OpDeleteExpense = "delete_expense"
	OpAddCredit     = "add_credit"
	OpCategories    = "categories"
	OpStartup       = "startup"
	OpShutdown      = "shutdown"
)
