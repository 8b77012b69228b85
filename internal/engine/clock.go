package engine

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// FormatDue renders t as the naive date and time strings posts are stored with.
func FormatDue(t time.Time) (string, string) {
	return t.Format(dateLayout), t.Format(timeLayout)
}
