package zoompan

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D point or delta in pixel or scene units.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

var mouseButtonNames = [...]string{
	MouseButtonLeft:   "left",
	MouseButtonRight:  "right",
	MouseButtonMiddle: "middle",
}

// String returns "left", "right" or "middle".
func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b MouseButton) MarshalText() ([]byte, error) {
	if int(b) >= len(mouseButtonNames) {
		return nil, fmt.Errorf("unknown mouse button %d", uint8(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the button
// names case-insensitively, plus "primary" and "secondary" as aliases.
func (b *MouseButton) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "left", "primary":
		*b = MouseButtonLeft
	case "right", "secondary":
		*b = MouseButtonRight
	case "middle":
		*b = MouseButtonMiddle
	default:
		return fmt.Errorf("unknown mouse button %q", string(text))
	}
	return nil
}
