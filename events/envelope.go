// Package events publishes run lifecycle events to RabbitMQ.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	Producer       = "chatsentiment"
	RunCompletedV1 = "reports.run_completed.v1"
)

type Meta struct {
	CorrelationID *string   `json:"correlation_id,omitempty"`
	ID            string    `json:"id"`
	Producer      *string   `json:"producer,omitempty"`
	Time          time.Time `json:"time"`
	Type          string    `json:"type"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

type RunCompleted struct {
	RunID           string `json:"run_id"`
	AccountID       string `json:"account_id"`
	From            string `json:"from"`
	To              string `json:"to"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
	Total           int    `json:"total"`
	WithMessages    int    `json:"with_messages"`
	WithoutMessages int    `json:"without_messages"`
	Filename        string `json:"filename,omitempty"`
	Location        string `json:"location,omitempty"`
}

// NewRunCompleted wraps a run summary; the run id doubles as correlation id.
func NewRunCompleted(data RunCompleted, at time.Time) Envelope {
	producer := Producer
	correlationID := data.RunID
	return Envelope{
		Meta: Meta{
			CorrelationID: &correlationID,
			ID:            uuid.NewString(),
			Producer:      &producer,
			Time:          at.UTC(),
			Type:          RunCompletedV1,
		},
		Data: data,
	}
}
