// Package validate turns raw console text into typed product fields.
//
// Each function formats (trims, parses, case-normalizes) its input and then
// checks the field's constraint. On failure the returned error wraps one of
// the sentinels below so that callers can pick a message with errors.Is;
// no value is produced.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/basket/pkg/types"
)

// Input errors.
var (
	ErrEmptyText       = errors.New("text must not be empty")
	ErrNotInteger      = errors.New("not an integer")
	ErrNotNumber       = errors.New("not a number")
	ErrNotPositive     = errors.New("value must be greater than zero")
	ErrNotBoolean      = errors.New("not a boolean")
	ErrDateFormat      = errors.New("date must be DD/MM/YYYY")
	ErrExpired         = errors.New("date is not in the future")
	ErrUnknownCategory = errors.New("unknown product type")
	ErrUnknownSize     = errors.New("unknown clothing size")
	ErrUnknownGender   = errors.New("unknown gender tag")
	ErrIDLength        = errors.New("id must have exactly 13 digits")
)

// dateParseLayout accepts single-digit days and months as well as padded ones.
const dateParseLayout = "2/1/2006"

var (
	trueWords  = map[string]bool{"true": true, "1": true, "t": true, "y": true, "yes": true}
	falseWords = map[string]bool{"false": true, "0": true, "f": true, "n": true, "no": true}
)

// minID and maxID bound the 13-digit ids: [10^12, 10^13).
const (
	minID int64 = 1_000_000_000_000
	maxID int64 = 10_000_000_000_000
)

// Normalize trims surrounding space and title-cases every word.
func Normalize(raw string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(raw))
}

// Text normalizes raw and rejects the empty string.
func Text(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

// Integer parses a whole number that must be at least 1.
func Integer(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotInteger)
	}
	if n < 1 {
		return 0, fmt.Errorf("%d: %w", n, ErrNotPositive)
	}
	return n, nil
}

// Price parses a finite number that must be greater than 0.
func Price(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotNumber)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%v: %w", f, ErrNotPositive)
	}
	return f, nil
}

// Bool maps the accepted yes/no spellings, case-insensitively.
func Bool(raw string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case trueWords[s]:
		return true, nil
	case falseWords[s]:
		return false, nil
	}
	return false, fmt.Errorf("%q: %w", raw, ErrNotBoolean)
}

// Date parses DD/MM/YYYY in now's location and requires a calendar day
// strictly after now's day.
func Date(raw string, now time.Time) (time.Time, error) {
	d, err := time.ParseInLocation(dateParseLayout, strings.TrimSpace(raw), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", raw, ErrDateFormat)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !d.After(today) {
		return time.Time{}, fmt.Errorf("%s: %w", d.Format(types.DateLayout), ErrExpired)
	}
	return d, nil
}

// ProductCategory title-cases raw and checks it names a category.
func ProductCategory(raw string) (types.Category, error) {
	c := types.Category(Normalize(raw))
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownCategory)
	}
	return c, nil
}

// ClothingSize upper-cases raw and checks it is a known size.
func ClothingSize(raw string) (types.Size, error) {
	s := types.Size(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownSize)
	}
	return s, nil
}

// ToyGender lower-cases raw and checks it is m or f.
func ToyGender(raw string) (types.Gender, error) {
	g := types.Gender(strings.ToLower(strings.TrimSpace(raw)))
	if !g.Valid() {
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownGender)
	}
	return g, nil
}

// IDFormat parses a 13-digit product id. Leading zeros do not count as
// digits.
func IDFormat(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotInteger)
	}
	if id < minID || id >= maxID {
		return 0, fmt.Errorf("%d: %w", id, ErrIDLength)
	}
	return id, nil
}

// NewID parses a 13-digit id that is not in taken.
func NewID(raw string, taken map[int64]bool) (int64, error) {
	id, err := IDFormat(raw)
	if err != nil {
		return 0, err
	}
	if taken[id] {
		return 0, fmt.Errorf("%d: %w", id, types.ErrDuplicateID)
	}
	return id, nil
}
