package livechat

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000Z"
	defaultLookback = 7 * 24 * time.Hour
)

// DateRange is the filter window sent to list_archives.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) FromString() string {
	return r.From.UTC().Format(timestampLayout)
}

func (r DateRange) ToString() string {
	return r.To.UTC().Format(timestampLayout)
}

func (r DateRange) Filters() Filters {
	return Filters{From: r.FromString(), To: r.ToString()}
}

// NewDateRange builds the filter window. When either bound is missing the
// trailing seven days ending at now are used. A provided bound that does
// not parse fails even if the other one is missing.
func NewDateRange(start, end string, now time.Time) (DateRange, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return DateRange{}, err
	}

	if start == "" || end == "" {
		to := now.UTC()
		return DateRange{From: to.Add(-defaultLookback), To: to}, nil
	}

	return DateRange{
		From: startDate,
		To:   endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}, nil
}

// CheckDateOrder rejects a start date later than the end date. Missing
// bounds are not an error here; they fall back to the default window.
func CheckDateOrder(start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	startDate, err := parseDate(start)
	if err != nil {
		return err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return err
	}
	if startDate.After(endDate) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, start, end)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}
	return t, nil
}
