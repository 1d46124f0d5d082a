// Package repositorytest holds the behavioural checks every ItemRepository
// implementation must pass. Call Run from the implementation's tests.
package repositorytest

import (
	"context"
	"errors"
	"strings"
	"testing"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
)

// unknownID is well-formed but never issued by a store in these tests.
const unknownID = "000000000000000000000000"

// Run executes the contract against repositories returned by newRepo.
// newRepo must return an empty repository on each call.
func Run(t *testing.T, newRepo func(t *testing.T) repositories.ItemRepository) {
	t.Helper()
	ctx := context.Background()

	save := func(t *testing.T, repo repositories.ItemRepository, name string) *models.Item {
		t.Helper()
		item := models.NewItem(models.ItemName(name))
		if err := repo.Save(ctx, item); err != nil {
			t.Fatalf("Save(%q): %v", name, err)
		}
		return item
	}

	t.Run("FindAll on empty store returns empty non-nil slice", func(t *testing.T) {
		items, err := newRepo(t).FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", items)
		}
	})

	t.Run("Save assigns unique ids", func(t *testing.T) {
		repo := newRepo(t)
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			item := save(t, repo, "milk")
			if !item.IsPersisted() {
				t.Fatal("expected id after Save")
			}
			if seen[item.ID] {
				t.Fatalf("duplicate id %s", item.ID)
			}
			seen[item.ID] = true
		}
	})

	t.Run("created item reads back with done=false", func(t *testing.T) {
		repo := newRepo(t)
		created := save(t, repo, "foo")

		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ID != created.ID || got.Name != "foo" || got.Done {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("FindAll preserves insertion order", func(t *testing.T) {
		repo := newRepo(t)
		names := []string{"first", "second", "third"}
		for _, n := range names {
			save(t, repo, n)
		}

		items, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if len(items) != len(names) {
			t.Fatalf("expected %d items, got %d", len(names), len(items))
		}
		for i, n := range names {
			if items[i].Name.String() != n {
				t.Errorf("position %d: got %q, want %q", i, items[i].Name, n)
			}
		}
	})

	t.Run("UpdateName keeps id and done", func(t *testing.T) {
		repo := newRepo(t)
		created := save(t, repo, "milk")
		if _, err := repo.SetDone(ctx, created.ID, true); err != nil {
			t.Fatalf("SetDone: %v", err)
		}

		updated, err := repo.UpdateName(ctx, created.ID, "oat milk")
		if err != nil {
			t.Fatalf("UpdateName: %v", err)
		}
		if updated.ID != created.ID || updated.Name != "oat milk" || !updated.Done {
			t.Fatalf("unexpected returned item: %+v", updated)
		}

		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "oat milk" || !got.Done {
			t.Fatalf("unexpected stored item: %+v", got)
		}
	})

	t.Run("SetDone sets rather than flips", func(t *testing.T) {
		repo := newRepo(t)
		created := save(t, repo, "milk")

		for _, want := range []bool{true, true, false, false} {
			got, err := repo.SetDone(ctx, created.ID, want)
			if err != nil {
				t.Fatalf("SetDone(%v): %v", want, err)
			}
			if got.Done != want {
				t.Fatalf("SetDone(%v) returned done=%v", want, got.Done)
			}
			stored, err := repo.GetByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if stored.Done != want {
				t.Fatalf("after SetDone(%v) stored done=%v", want, stored.Done)
			}
		}
	})

	t.Run("Delete then GetByID is not found", func(t *testing.T) {
		repo := newRepo(t)
		created := save(t, repo, "milk")

		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("second Delete: expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.GetByID(ctx, unknownID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Errorf("GetByID: expected ErrItemNotFound, got %v", err)
		}
		if _, err := repo.UpdateName(ctx, unknownID, "x"); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Errorf("UpdateName: expected ErrItemNotFound, got %v", err)
		}
		if _, err := repo.SetDone(ctx, unknownID, true); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Errorf("SetDone: expected ErrItemNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, unknownID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Errorf("Delete: expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
			if _, err := repo.GetByID(ctx, id); !errors.Is(err, itemdomain.ErrInvalidItemID) {
				t.Errorf("GetByID(%q): expected ErrInvalidItemID, got %v", id, err)
			}
			if err := repo.Delete(ctx, id); !errors.Is(err, itemdomain.ErrInvalidItemID) {
				t.Errorf("Delete(%q): expected ErrInvalidItemID, got %v", id, err)
			}
		}
	})

	t.Run("CanonicalID lowercases and rejects malformed ids", func(t *testing.T) {
		repo := newRepo(t)
		item := save(t, repo, "milk")

		for _, id := range []string{item.ID, strings.ToUpper(item.ID)} {
			got, err := repo.CanonicalID(id)
			if err != nil {
				t.Fatalf("CanonicalID(%q): %v", id, err)
			}
			if got != item.ID {
				t.Errorf("CanonicalID(%q) = %q, want %q", id, got, item.ID)
			}
		}
		if _, err := repo.CanonicalID("abc"); !errors.Is(err, itemdomain.ErrInvalidItemID) {
			t.Errorf("CanonicalID(abc): expected ErrInvalidItemID, got %v", err)
		}
	})

	t.Run("uppercase id addresses the same item", func(t *testing.T) {
		repo := newRepo(t)
		item := save(t, repo, "milk")

		if err := repo.Delete(ctx, strings.ToUpper(item.ID)); err != nil {
			t.Fatalf("Delete(upper): %v", err)
		}
		if _, err := repo.GetByID(ctx, item.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}
