package services

import (
	"fmt"
	"time"
)

// ParseDate parses an event date submitted through the website form.
// Only ISO 8601 (YYYY-MM-DD, the HTML5 date input format) is accepted.
func ParseDate(dateStr string) (time.Time, error) {
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}
