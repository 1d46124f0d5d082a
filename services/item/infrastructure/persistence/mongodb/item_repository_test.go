package mongodb

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/logger"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	"github.com/ghuser/itemtracker/services/item/domain/repositories/repositorytest"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != oid {
		t.Fatalf("expected %s, got %s", oid.Hex(), got.Hex())
	}

	for _, bad := range []string{"", "123", "not-an-object-id-at-all!"} {
		if _, err := parseID(bad); !errors.Is(err, itemdomain.ErrInvalidItemID) {
			t.Errorf("parseID(%q): expected ErrInvalidItemID, got %v", bad, err)
		}
	}
}

func TestDocToItem(t *testing.T) {
	oid := primitive.NewObjectID()
	item := docToItem(itemDocument{ID: oid, Name: "milk", Done: true})

	if item.ID != oid.Hex() || item.Name != "milk" || !item.Done {
		t.Fatalf("unexpected item: %+v", item)
	}
}

// Integration tests: skipped unless MONGO_URI is set. Each subtest gets a
// freshly dropped collection in the itemtracker_test database.
func TestItemRepository_Contract(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping integration tests")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, uri, "itemtracker_test", logger.Discard())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(context.Background()) })

	repositorytest.Run(t, func(t *testing.T) repositories.ItemRepository {
		if err := db.Collection(CollectionName).Drop(ctx); err != nil {
			t.Fatalf("drop collection: %v", err)
		}
		return NewItemRepository(db)
	})
}
