package etl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleID is a user id as it appears in activity logs: sometimes a
// JSON number, sometimes a quoted string, and an empty string for
// anonymous sessions. Valid is false when no id was present.
type FlexibleID struct {
	Value int
	Valid bool
}

// UnmarshalJSON accepts 83, "83", "" and null.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = FlexibleID{}
		return nil
	}

	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*f = FlexibleID{}
		return nil
	}

	// logs occasionally render the id as a float ("83.0")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %s: %w", string(data), err)
	}

	*f = FlexibleID{Value: int(v), Valid: true}
	return nil
}

// LogEvent mirrors one line of an activity log file.
type LogEvent struct {
	Artist    string     `json:"artist"`
	FirstName *string    `json:"firstName"`
	Gender    *string    `json:"gender"`
	LastName  *string    `json:"lastName"`
	Length    float64    `json:"length"`
	Level     string     `json:"level"`
	Location  string     `json:"location"`
	Page      string     `json:"page"`
	SessionID int        `json:"sessionId"`
	Song      string     `json:"song"`
	TS        int64      `json:"ts"`
	UserAgent string     `json:"userAgent"`
	UserID    FlexibleID `json:"userId"`
}

// ParseLogFile parses the newline-delimited JSON events of an activity
// log file. Lines that fail to parse are dropped; skipped reports how
// many. No page filtering happens here.
func ParseLogFile(content []byte) (events []LogEvent, skipped int) {
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev LogEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			skipped++
			continue
		}

		events = append(events, ev)
	}
	if sc.Err() != nil {
		skipped++
	}

	return events, skipped
}
