package chatlog

import "time"

// DisplayLayout matches the ja-JP medium date / short time style.
const DisplayLayout = "2006/01/02 15:04"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTime renders an ISO-8601 timestamp in local time, or "" if value does not parse.
func FormatTime(value string) string {
	for _, layout := range parseLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano || layout == time.RFC3339 {
			t, err = time.Parse(layout, value)
		} else {
			// Timestamps without an offset are local time.
			t, err = time.ParseInLocation(layout, value, time.Local)
		}
		if err == nil {
			return t.Local().Format(DisplayLayout)
		}
	}
	return ""
}
