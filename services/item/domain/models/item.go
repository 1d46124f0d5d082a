package models

// Item is the core aggregate for this bounded context.
type Item struct {
	ID   string // store-assigned; empty until the item is saved
	Name ItemName
	Done bool
}

// NewItem constructs an unsaved Item. Done always starts false.
func NewItem(name ItemName) *Item {
	return &Item{Name: name}
}

// IsPersisted reports whether the store has assigned an ID.
func (i *Item) IsPersisted() bool {
	return i.ID != ""
}
