package domain

import (
	"fmt"
	"strings"
)

// Side is the sun's position relative to the direction of travel.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "LEFT"
	case SideRight:
		return "RIGHT"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Opposite returns the other side of the vehicle.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case SideLeft, SideRight:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("marshal side: unknown value %d", int(s))
}

func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "LEFT":
		*s = SideLeft
	case "RIGHT":
		*s = SideRight
	default:
		return fmt.Errorf("%w: unknown side %q", ErrInvalidInput, string(b))
	}
	return nil
}
