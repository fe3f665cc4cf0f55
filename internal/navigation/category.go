package navigation

import (
	"fmt"
	"strings"
)

// Category selects which obstacle classes populate a grid.
type Category uint8

// Obstacle categories.
const (
	CategoryNone    Category = iota // Empty grid, nothing is avoided
	CategoryPlanets                 // Planets only
	CategoryShips                   // Ships only
	CategoryAll                     // Planets and ships
)

// Categories lists every valid category in declaration order.
var Categories = [...]Category{CategoryNone, CategoryPlanets, CategoryShips, CategoryAll}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryPlanets:
		return "planets"
	case CategoryShips:
		return "ships"
	case CategoryAll:
		return "all"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c <= CategoryAll
}

// ParseCategory converts a category name back into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return CategoryNone, nil
	case "planets":
		return CategoryPlanets, nil
	case "ships":
		return CategoryShips, nil
	case "all":
		return CategoryAll, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
