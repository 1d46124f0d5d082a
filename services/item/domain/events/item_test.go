package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/itemtracker/services/item/domain/events"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

func TestNewItemChanged_CopiesPostImage(t *testing.T) {
	item := &models.Item{ID: "65f1a2b3c4d5e6f708091a2b", Name: "milk", Done: true}

	before := time.Now().UTC()
	evt := events.NewItemChanged(item)

	if evt.EventID == uuid.Nil {
		t.Fatal("expected non-nil EventID")
	}
	if evt.Version != events.SchemaVersion {
		t.Errorf("Version: got %d, want %d", evt.Version, events.SchemaVersion)
	}
	if evt.ItemID != item.ID || evt.Name != "milk" || !evt.Done {
		t.Errorf("unexpected event payload: %+v", evt)
	}
	if evt.OccurredAt.Before(before) {
		t.Errorf("OccurredAt %v is before %v", evt.OccurredAt, before)
	}
}

func TestNewItemDeleted_UniqueEventIDs(t *testing.T) {
	a := events.NewItemDeleted("65f1a2b3c4d5e6f708091a2b")
	b := events.NewItemDeleted("65f1a2b3c4d5e6f708091a2b")
	if a.EventID == b.EventID {
		t.Fatal("expected unique event ids per publish")
	}
}

func TestItemChangedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.NewItemChanged(&models.Item{ID: "x", Name: "milk"}))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "name", "done", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
	if raw["done"] != false {
		t.Errorf("done must serialize as false, got %v", raw["done"])
	}
}

func TestTopics(t *testing.T) {
	topics := map[string]string{
		events.TopicItemCreated: "item.created",
		events.TopicItemUpdated: "item.updated",
		events.TopicItemDeleted: "item.deleted",
	}
	for got, want := range topics {
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
