package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

const filenameLayout = "20060102_150405"

// Filename is the conventional export name for a report generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("chat_sentiment_analysis_%s.csv", t.Format(filenameLayout))
}

// Record renders a row in Columns order.
func (s ChatSummary) Record() []string {
	return []string{
		s.ChatID,
		s.ContactDate,
		s.ClientName,
		s.ClientEmail,
		strconv.Itoa(s.TotalClientMessages),
		strconv.Itoa(s.PositiveCount),
		strconv.Itoa(s.NegativeCount),
		strconv.Itoa(s.NeutralCount),
		strconv.FormatFloat(s.AvgSentiment, 'f', 2, 64),
		string(s.OverallSentiment),
		yesNo(s.HasCustomerMessages),
	}
}

func WriteCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range r.Rows {
		if err := writer.Write(row.Record()); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func EncodeCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
