package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/NextMind-AI/chat-sentiment/processor"
	"github.com/NextMind-AI/chat-sentiment/report"
	"github.com/NextMind-AI/chat-sentiment/sentiment"
)

func TestPrintSummary(t *testing.T) {
	assembler := report.NewAssembler("from", "to")
	for i := 0; i < 7; i++ {
		assembler.Add(report.NewChatSummary("T", "2024-01-01", "Ann", "ann@example.com", sentiment.EmptySummary()))
	}
	rep := assembler.Report(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	printSummary(&buf, &processor.RunResult{
		Report: rep,
		Counts: rep.Counts(),
		Path:   "out/chat_sentiment_analysis_20240108_120000.csv",
	})

	out := buf.String()
	if !strings.Contains(out, "total_chats=7 with_customer_messages=0 without_customer_messages=7") {
		t.Errorf("Missing counts line:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// report line, counts line, header, five preview rows
	if len(lines) != 8 {
		t.Errorf("Expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "Chat_ID") {
		t.Errorf("Expected header row, got %q", lines[2])
	}
}

func TestRunCLI_UnknownCommand(t *testing.T) {
	if err := runCLI([]string{"bogus"}); err == nil {
		t.Error("Expected error for unknown command")
	}
}
