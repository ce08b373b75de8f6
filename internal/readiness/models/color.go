package models

import "strings"

// Color is the traffic-light status of a requirement. The values are ordered
// so that the worst of several colors is their maximum; Gray (no data) is the
// lowest and therefore never wins over a measured color.
type Color uint8

const (
	Gray Color = iota
	Green
	Yellow
	Red
)

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "gray"
	}
}

// ParseColor maps a color label to a Color. Unknown or empty labels are Gray.
func ParseColor(s string) Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green":
		return Green
	case "yellow":
		return Yellow
	case "red":
		return Red
	default:
		return Gray
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	*c = ParseColor(string(text))
	return nil
}
