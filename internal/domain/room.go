package domain

import "fmt"

// Category is the closed set of room categories.
type Category int

const (
	// CategoryDeluxe is the first-tier room.
	CategoryDeluxe Category = iota + 1
	// CategorySuite is the second-tier room.
	CategorySuite
)

type categoryInfo struct {
	name  string
	price float64
}

// categoryTable is indexed by Category; slot 0 is the zero value.
var categoryTable = [...]categoryInfo{
	CategoryDeluxe: {name: "Deluxe", price: 1500.0},
	CategorySuite:  {name: "Suite", price: 2500.0},
}

// Categories returns every category in menu order.
func Categories() []Category {
	return []Category{CategoryDeluxe, CategorySuite}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c > 0 && int(c) < len(categoryTable)
}

// String returns the category name as written to the store files.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryTable[c].name
}

// Price returns the nightly price for the category, or 0 if unknown.
func (c Category) Price() float64 {
	if !c.Valid() {
		return 0
	}
	return categoryTable[c].price
}

// ParseCategory resolves an exact category name.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if categoryTable[c].name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ParseCategoryLenient resolves a category name the way the store format
// always has: exactly "Deluxe" is Deluxe, anything else is Suite. The
// second result is false when the fallback was taken.
func ParseCategoryLenient(name string) (Category, bool) {
	c, err := ParseCategory(name)
	if err != nil {
		return CategorySuite, false
	}
	return c, true
}

// Room is a hotel room. Number is the catalog key.
type Room struct {
	Number   int
	Category Category
	Booked   bool
}

// NewRoom returns an unbooked room.
func NewRoom(number int, category Category) Room {
	return Room{Number: number, Category: category}
}

// Price returns the nightly price of the room's category.
func (r Room) Price() float64 {
	return r.Category.Price()
}
