package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrInvalidItemID, "invalid item id"},
		{ErrInvalidItemName, "invalid item name"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected message: got %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrItemNotFound, ErrInvalidItemID) || errors.Is(ErrInvalidItemID, ErrInvalidItemName) {
		t.Fatal("sentinel errors must not match each other")
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("get item: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidItemID, errors.New("encoding/hex: invalid byte"))
	if !errors.Is(wrapped2, ErrInvalidItemID) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidItemID")
	}
}
