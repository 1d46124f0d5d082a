package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxItemNameLength is the longest accepted name, counted in characters.
const MaxItemNameLength = 255

var errNameNotUTF8 = errors.New("item name must be valid UTF-8")

// ItemName is the label shown for an item. Construct with NewItemName so the
// length and encoding rules hold; the zero value is never persisted.
type ItemName string

// NewItemName returns an ItemName or an error describing the broken rule.
func NewItemName(s string) (ItemName, error) {
	if !utf8.ValidString(s) {
		return "", errNameNotUTF8
	}
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return "", errors.New("item name must not be empty")
	}
	if n > MaxItemNameLength {
		return "", fmt.Errorf("item name must not exceed %d characters (got %d)", MaxItemNameLength, n)
	}
	return ItemName(s), nil
}

func (n ItemName) String() string {
	return string(n)
}
