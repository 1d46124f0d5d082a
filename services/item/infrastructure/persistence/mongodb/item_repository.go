package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghuser/itemtracker/pkg/database"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// CollectionName is the collection holding item documents.
const CollectionName = "items"

// itemDocument is the persisted shape of an Item.
type itemDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Done bool               `bson:"done"`
}

// ItemRepository implements repositories.ItemRepository against MongoDB.
type ItemRepository struct {
	coll *mongo.Collection
}

// NewItemRepository returns an ItemRepository on the items collection of db.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{coll: db.Collection(CollectionName)}
}

// CanonicalID returns id as lowercase ObjectID hex.
func (r *ItemRepository) CanonicalID(id string) (string, error) {
	oid, err := parseID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

// FindAll returns every item sorted by _id, which follows insertion order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}

	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*models.Item, len(docs))
	for i := range docs {
		items[i] = docToItem(docs[i])
	}
	return items, nil
}

// GetByID returns the item with the given hex id.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, "find item")
	}
	return docToItem(doc), nil
}

// Save inserts item with done=false written explicitly and copies the
// generated ObjectID back onto item.ID.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	res, err := r.coll.InsertOne(ctx, itemDocument{
		Name: item.Name.String(),
		Done: item.Done,
	})
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert item: unexpected id type %T", res.InsertedID)
	}
	item.ID = oid.Hex()
	return nil
}

// UpdateName sets name and returns the post-update document.
func (r *ItemRepository) UpdateName(ctx context.Context, id string, name models.ItemName) (*models.Item, error) {
	return r.set(ctx, id, bson.D{{Key: "name", Value: name.String()}})
}

// SetDone sets done to the given value and returns the post-update document.
func (r *ItemRepository) SetDone(ctx context.Context, id string, done bool) (*models.Item, error) {
	return r.set(ctx, id, bson.D{{Key: "done", Value: done}})
}

// Delete removes the item with the given hex id.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) set(ctx context.Context, id string, fields bson.D) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: fields}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFoundOr(err, "update item")
	}
	return docToItem(doc), nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, id)
	}
	return oid, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return itemdomain.ErrItemNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func docToItem(doc itemDocument) *models.Item {
	return &models.Item{
		ID:   doc.ID.Hex(),
		Name: models.ItemName(doc.Name),
		Done: doc.Done,
	}
}
