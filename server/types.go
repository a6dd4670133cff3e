package server

import (
	"github.com/NextMind-AI/chat-sentiment/history"
	"github.com/NextMind-AI/chat-sentiment/report"
)

// RunRequestBody is accepted as JSON or as a urlencoded form.
type RunRequestBody struct {
	AccountID string `json:"account_id" form:"account_id"`
	Token     string `json:"token" form:"token"`
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
}

type RunResponse struct {
	RunID       string               `json:"run_id"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Counts      report.Counts        `json:"counts"`
	Filename    string               `json:"filename"`
	Location    string               `json:"location,omitempty"`
	DownloadURL string               `json:"download_url"`
	Preview     []report.ChatSummary `json:"preview"`
}

type RunListResponse struct {
	Runs []history.Run `json:"runs"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
