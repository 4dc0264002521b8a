package etl

import (
	"time"

	"github.com/vvka-141/playlog/pkg/playlog"
)

// DecomposeTime expands a millisecond epoch timestamp into a time
// dimension row. The week is the ISO 8601 week number and the weekday is
// Monday-based (Monday = 0, Sunday = 6), matching the convention the
// activity logs were produced with. Timestamps are interpreted as UTC.
func DecomposeTime(ms int64) playlog.TimeRow {
	t := time.UnixMilli(ms).UTC()
	_, week := t.ISOWeek()

	return playlog.TimeRow{
		StartTime: t,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}
