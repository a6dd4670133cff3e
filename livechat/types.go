package livechat

import "time"

// Config holds the settings the archive client needs to reach the API.
type Config struct {
	APIURL   string
	PageSize int
	Policy   FetchPolicy
}

// FetchPolicy makes the network behaviour of a run explicit.
// MaxRetries only applies to transport failures; a non-success response
// is never retried.
type FetchPolicy struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

type Filters struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ListArchivesRequest struct {
	Filters Filters `json:"filters"`
	Limit   int     `json:"limit"`
	PageID  string  `json:"page_id,omitempty"`
}

type ListArchivesResponse struct {
	Chats      []ChatRecord `json:"chats"`
	NextPageID string       `json:"next_page_id,omitempty"`
	FoundChats int          `json:"found_chats,omitempty"`
}

// ChatRecord is one archived chat as returned by list_archives.
type ChatRecord struct {
	ID     string  `json:"id,omitempty"`
	Thread *Thread `json:"thread,omitempty"`
	Users  []User  `json:"users,omitempty"`
}

type Thread struct {
	ID        string  `json:"id,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	Events    []Event `json:"events,omitempty"`
}

type Event struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	AuthorID  string `json:"author_id,omitempty"`
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type User struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
