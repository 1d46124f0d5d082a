// Package services contains stateless domain rules for the item bounded context.
package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// ValidateName applies the content rules that ItemName's constructor does not:
// no surrounding whitespace, not blank, no control characters.
func ValidateName(name models.ItemName) error {
	s := name.String()

	if strings.TrimSpace(s) == "" {
		return errors.New("item name must not be blank")
	}
	if s != strings.TrimSpace(s) {
		return errors.New("item name must not have leading or trailing whitespace")
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return errors.New("item name must not contain control characters")
	}
	return nil
}

// ValidateItemForCreation checks an Item right before its first save.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}
	if item.IsPersisted() {
		return errors.New("item already has an id")
	}
	if item.Done {
		return errors.New("new items must start with done=false")
	}
	return ValidateName(item.Name)
}
