package domain

import "fmt"

// Color identifies one light/button of the game device.
// The numeric value is the enumeration index used for iteration order.
type Color uint8

const (
	Red Color = iota
	Green
	Yellow
	Blue
)

// ColorCount is the number of distinct lights on the device
const ColorCount = 4

// Colors lists every color in scan order
var Colors = [ColorCount]Color{Red, Green, Yellow, Blue}

var colorNames = [ColorCount]string{"red", "green", "yellow", "blue"}

// Valid reports whether c is one of the device colors
func (c Color) Valid() bool {
	return int(c) < ColorCount
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// ParseColor converts a color name back into a Color
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
