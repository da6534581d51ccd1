package dbconsole

// Form field names posted by the console page.
const (
	FieldDBURL       = "db_url"
	FieldSSLMode     = "sslmode"
	FieldAction      = "action"
	FieldTable       = "table_name"
	FieldSQL         = "sql_text"
	FieldDeleteTable = "delete_table_name"
	FieldRow         = "row_json"
)

// Session cookie name and keys used to remember the last connection.
const (
	SessionName       = "sqlconsole"
	sessionKeyDBURL   = "db_url"
	sessionKeySSLMode = "sslmode"
)

// SSLModes are the choices offered by the connection form.
var SSLModes = []string{"disable", "require", "verify-ca", "verify-full"}

// PageData is everything the console page renders.
type PageData struct {
	Title    string
	DBURL    string
	SSLMode  string
	Tables   []string
	Selected string
	SQLText  string
	Message  string
	Error    string
	Result   *ResultView
}

// ResultView is a rendered result table. Snapshots and DeleteTable are set
// only when rows can be deleted; Snapshots[i] is the encoded snapshot of row i.
type ResultView struct {
	Columns     []string
	Rows        [][]Cell
	Snapshots   []string
	DeleteTable string
}

// Cell is one displayed value.
type Cell struct {
	Text string
	Null bool
}
