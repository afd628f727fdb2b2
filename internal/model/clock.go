package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day with minute precision, serialized as zero-padded
// "HH:MM" so that string order matches chronological order.
type Clock struct {
	Hour   int
	Minute int
}

var (
	DefaultStartTime = Clock{Hour: 9}
	DefaultEndTime   = Clock{Hour: 10}
)

func ParseClock(raw string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Clock{}, fmt.Errorf("model: invalid time %q", raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("model: invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("model: invalid minute in %q", raw)
	}
	return Clock{Hour: h, Minute: m}, nil
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: time must be a string: %w", err)
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DurationMinutes is end-start in minutes, or 0 when end is not after start.
func DurationMinutes(start, end Clock) int {
	return max(0, end.Minutes()-start.Minutes())
}
