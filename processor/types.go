package processor

const (
	notAvailable  = "N/A"
	anonymousName = "Anonymous"
	customerType  = "customer"
	messageType   = "message"
)

// RunRequest carries the inputs of one pipeline run. Dates are
// "YYYY-MM-DD"; leaving either empty selects the trailing seven days.
type RunRequest struct {
	AccountID string `json:"account_id"`
	Token     string `json:"token"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Extraction is what the pipeline needs from one raw chat record.
type Extraction struct {
	ThreadID    string
	CreatedAt   string
	ClientName  string
	ClientEmail string
	Messages    []string
}

type Settings struct {
	PageSize int
	MaxPages int
	Observer RunObserver
}
