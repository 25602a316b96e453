package pantry

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyInPantry = errors.New("this ingredient is already in your pantry")
	ErrNotInPantry     = errors.New("ingredient is not in the pantry")
	ErrInvalidUnit     = errors.New("invalid unit")
)

// Unit is a measurement unit a pantry quantity can be expressed in.
type Unit string

const (
	UnitPiece      Unit = "piece"
	UnitCup        Unit = "cup"
	UnitTablespoon Unit = "tablespoon"
	UnitTeaspoon   Unit = "teaspoon"
	UnitPound      Unit = "pound"
	UnitOunce      Unit = "ounce"
	UnitGram       Unit = "gram"
	UnitKilogram   Unit = "kilogram"
	UnitLiter      Unit = "liter"
	UnitMilliliter Unit = "milliliter"
)

// Units lists every unit in display order.
var Units = []Unit{
	UnitPiece, UnitCup, UnitTablespoon, UnitTeaspoon, UnitPound,
	UnitOunce, UnitGram, UnitKilogram, UnitLiter, UnitMilliliter,
}

func (u Unit) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

// ParseUnit converts s to a Unit. An empty string means the default unit.
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return UnitPiece, nil
	}
	u := Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// DateLayout is the stored form of DateAdded: UTC with millisecond precision,
// e.g. 2024-05-01T10:00:00.000Z.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Item is an ingredient the user currently has. ID comes from the external
// ingredient catalog and is unique within a pantry.
type Item struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  string `json:"quantity,omitempty"`
	Unit      Unit   `json:"unit,omitempty"`
	DateAdded string `json:"dateAdded"`
}

// Added parses DateAdded. The zero time is returned for unparsable values.
func (it Item) Added() time.Time {
	t, err := time.Parse(time.RFC3339Nano, it.DateAdded)
	if err != nil {
		return time.Time{}
	}
	return t
}

func newItem(id int, name, image string, now time.Time) Item {
	return Item{
		ID:        id,
		Name:      name,
		Image:     image,
		Quantity:  "1",
		Unit:      UnitPiece,
		DateAdded: now.UTC().Format(DateLayout),
	}
}
