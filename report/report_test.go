package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/NextMind-AI/chat-sentiment/sentiment"
)

func sampleRows() []ChatSummary {
	return []ChatSummary{
		NewChatSummary("T1", "2024-01-01T10:00:00Z", "Ann", "ann@example.com", sentiment.Summary{
			Total: 2, Positive: 1, Negative: 1, Average: 0.1, Overall: sentiment.Positive, HasMessages: true,
		}),
		NewChatSummary("N/A", "N/A", "N/A", "N/A", sentiment.EmptySummary()),
	}
}

func TestAssembler_KeepsEveryRowInOrder(t *testing.T) {
	a := NewAssembler("from", "to")
	rows := sampleRows()
	for _, row := range rows {
		a.Add(row)
	}
	a.Add(rows[0])

	r := a.Report(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if len(r.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(r.Rows))
	}
	if r.Rows[0].ChatID != "T1" || r.Rows[1].ChatID != "N/A" || r.Rows[2].ChatID != "T1" {
		t.Errorf("unexpected row order %+v", r.Rows)
	}

	counts := r.Counts()
	if counts != (Counts{Total: 3, WithMessages: 2, WithoutMessages: 1}) {
		t.Errorf("unexpected counts %+v", counts)
	}
}

func TestWriteCSV(t *testing.T) {
	r := &Report{Rows: sampleRows()}

	data, err := EncodeCSV(r)
	if err != nil {
		t.Fatalf("EncodeCSV error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(Columns, ",") {
		t.Errorf("unexpected header %v", records[0])
	}

	want := []string{"T1", "2024-01-01T10:00:00Z", "Ann", "ann@example.com", "2", "1", "1", "0", "0.10", "Positive", "Yes"}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Errorf("row mismatch:\n got %v\nwant %v", records[1], want)
	}

	empty := []string{"N/A", "N/A", "N/A", "N/A", "0", "0", "0", "0", "0.00", "No Messages", "No"}
	if strings.Join(records[2], "|") != strings.Join(empty, "|") {
		t.Errorf("empty row mismatch:\n got %v\nwant %v", records[2], empty)
	}
}

func TestWriteCSV_EmptyReportHasHeaderOnly(t *testing.T) {
	data, err := EncodeCSV(&Report{})
	if err != nil {
		t.Fatalf("EncodeCSV error: %v", err)
	}
	if got, want := strings.TrimSpace(string(data)), strings.Join(Columns, ","); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRecord_AverageAlwaysTwoDecimals(t *testing.T) {
	for in, want := range map[float64]string{0: "0.00", 0.5: "0.50", -0.33: "-0.33", 1: "1.00"} {
		row := ChatSummary{AvgSentiment: in}
		if got := row.Record()[8]; got != want {
			t.Errorf("avg %v rendered %q, want %q", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	got := Filename(time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC))
	if want := "chat_sentiment_analysis_20240307_090501.csv"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
