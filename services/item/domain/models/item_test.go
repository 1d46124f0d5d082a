package models

import "testing"

func TestNewItem(t *testing.T) {
	name := ItemName("milk")

	t.Run("sets Name", func(t *testing.T) {
		item := NewItem(name)
		if item.Name != name {
			t.Fatalf("expected Name %q, got %q", name, item.Name)
		}
	})

	t.Run("defaults Done to false", func(t *testing.T) {
		if NewItem(name).Done {
			t.Fatal("expected Done=false for a new item")
		}
	})

	t.Run("is not persisted until the store assigns an ID", func(t *testing.T) {
		item := NewItem(name)
		if item.IsPersisted() {
			t.Fatal("expected unsaved item")
		}
		item.ID = "65f1a2b3c4d5e6f708091a2b"
		if !item.IsPersisted() {
			t.Fatal("expected persisted item once ID is set")
		}
	})
}
