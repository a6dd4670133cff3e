// Package report assembles per-chat sentiment rows into the exported table.
package report

import (
	"time"

	"github.com/NextMind-AI/chat-sentiment/sentiment"
)

// Columns is the fixed column order of the exported table.
var Columns = []string{
	"Chat_ID",
	"Contact_Date",
	"Client_Name",
	"Client_Email",
	"Total_Client_Messages",
	"Positive_Messages",
	"Negative_Messages",
	"Neutral_Messages",
	"Average_Sentiment_Score",
	"Overall_Chat_Sentiment",
	"Has_Customer_Messages",
}

// ChatSummary is one row of the report.
type ChatSummary struct {
	ChatID              string          `json:"chat_id"`
	ContactDate         string          `json:"contact_date"`
	ClientName          string          `json:"client_name"`
	ClientEmail         string          `json:"client_email"`
	TotalClientMessages int             `json:"total_client_messages"`
	PositiveCount       int             `json:"positive_count"`
	NegativeCount       int             `json:"negative_count"`
	NeutralCount        int             `json:"neutral_count"`
	AvgSentiment        float64         `json:"avg_sentiment"`
	OverallSentiment    sentiment.Label `json:"overall_sentiment"`
	HasCustomerMessages bool            `json:"has_customer_messages"`
}

// NewChatSummary merges chat metadata with its sentiment rollup.
func NewChatSummary(chatID, contactDate, clientName, clientEmail string, s sentiment.Summary) ChatSummary {
	return ChatSummary{
		ChatID:              chatID,
		ContactDate:         contactDate,
		ClientName:          clientName,
		ClientEmail:         clientEmail,
		TotalClientMessages: s.Total,
		PositiveCount:       s.Positive,
		NegativeCount:       s.Negative,
		NeutralCount:        s.Neutral,
		AvgSentiment:        s.Average,
		OverallSentiment:    s.Overall,
		HasCustomerMessages: s.HasMessages,
	}
}

type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Rows        []ChatSummary `json:"rows"`
}

type Counts struct {
	Total           int `json:"total"`
	WithMessages    int `json:"with_customer_messages"`
	WithoutMessages int `json:"without_customer_messages"`
}

func (r *Report) Counts() Counts {
	counts := Counts{Total: len(r.Rows)}
	for _, row := range r.Rows {
		if row.HasCustomerMessages {
			counts.WithMessages++
		} else {
			counts.WithoutMessages++
		}
	}
	return counts
}

// Assembler collects rows in arrival order. Nothing is filtered or
// deduplicated: every Add yields exactly one row.
type Assembler struct {
	from string
	to   string
	rows []ChatSummary
}

func NewAssembler(from, to string) *Assembler {
	return &Assembler{from: from, to: to}
}

func (a *Assembler) Add(row ChatSummary) {
	a.rows = append(a.rows, row)
}

func (a *Assembler) Len() int {
	return len(a.rows)
}

func (a *Assembler) Report(generatedAt time.Time) *Report {
	rows := make([]ChatSummary, len(a.rows))
	copy(rows, a.rows)
	return &Report{
		GeneratedAt: generatedAt,
		From:        a.from,
		To:          a.to,
		Rows:        rows,
	}
}
