package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/db"
	"github.com/erazemk/posest/internal/model"
)

func newTestOwner(t *testing.T, database *sql.DB, username string) int64 {
	t.Helper()
	user, err := CreateUser(context.Background(), database, username, "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

func newTestItem(ownerID int64, name string, itemType model.ItemType, status model.ItemStatus, received time.Time) *model.OwnedItem {
	return &model.OwnedItem{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Name:             name,
		PictureURL:       "📦",
		ItemType:         itemType,
		Status:           status,
		ItemReceivedDate: received,
		LastUsed:         received,
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	owner := newTestOwner(t, database, "alice")

	received := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	item := newTestItem(owner, "Laptop", model.ItemTypeTechnology, model.ItemStatusKeep, received)
	if err := s.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := s.GetItem(ctx, owner, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.ID != item.ID || got.Name != "Laptop" || got.PictureURL != "📦" {
		t.Errorf("unexpected item %+v", got)
	}
	if got.ItemType != model.ItemTypeTechnology || got.Status != model.ItemStatusKeep {
		t.Errorf("unexpected enums %q/%q", got.ItemType, got.Status)
	}
	if !got.ItemReceivedDate.Equal(received) || !got.LastUsed.Equal(received) {
		t.Errorf("dates did not round-trip: %s, %s", got.ItemReceivedDate, got.LastUsed)
	}
}

func TestGetItemScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	alice := newTestOwner(t, database, "alice")
	bob := newTestOwner(t, database, "bob")

	item := newTestItem(alice, "Scarf", model.ItemTypeClothing, model.ItemStatusKeep, time.Now())
	s.CreateItem(ctx, item)

	got, err := s.GetItem(ctx, bob, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Error("expected other owner's item to be absent")
	}

	found, _ := s.DeleteItem(ctx, bob, item.ID)
	if found {
		t.Error("expected other owner's delete to report not found")
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	owner := newTestOwner(t, database, "alice")

	item := newTestItem(owner, "Sofa", model.ItemTypeHousehold, model.ItemStatusKeep, time.Now())
	s.CreateItem(ctx, item)

	item.Status = model.ItemStatusSell
	found, err := s.UpdateItem(ctx, item)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if !found {
		t.Fatal("expected item to be found")
	}

	got, _ := s.GetItem(ctx, owner, item.ID)
	if got.Status != model.ItemStatusSell {
		t.Errorf("expected status Sell, got %q", got.Status)
	}

	// Saving unchanged values still counts as found.
	found, _ = s.UpdateItem(ctx, got)
	if !found {
		t.Error("expected unchanged update to report found")
	}

	missing := newTestItem(owner, "Ghost", model.ItemTypeOther, model.ItemStatusKeep, time.Now())
	found, _ = s.UpdateItem(ctx, missing)
	if found {
		t.Error("expected update of unknown item to report not found")
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	owner := newTestOwner(t, database, "alice")

	item := newTestItem(owner, "Old Phone", model.ItemTypeTechnology, model.ItemStatusDiscard, time.Now())
	s.CreateItem(ctx, item)
	s.SetItemPicture(ctx, item.ID, []byte("jpeg"), "image/jpeg")

	found, err := s.DeleteItem(ctx, owner, item.ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if !found {
		t.Error("expected first delete to find the item")
	}

	got, _ := s.GetItem(ctx, owner, item.ID)
	if got != nil {
		t.Error("expected deleted item to be gone")
	}

	found, err = s.DeleteItem(ctx, owner, item.ID)
	if err != nil {
		t.Fatalf("second DeleteItem: %v", err)
	}
	if found {
		t.Error("expected second delete to report not found")
	}

	var pictures int
	database.QueryRow(`SELECT COUNT(*) FROM item_pictures`).Scan(&pictures)
	if pictures != 0 {
		t.Errorf("expected picture removed with item, got %d rows", pictures)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	alice := newTestOwner(t, database, "alice")
	bob := newTestOwner(t, database, "bob")

	base := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	s.CreateItem(ctx, newTestItem(alice, "Coat", model.ItemTypeClothing, model.ItemStatusKeep, base))
	s.CreateItem(ctx, newTestItem(alice, "Shirt", model.ItemTypeClothing, model.ItemStatusDonate, base.AddDate(0, 1, 0)))
	s.CreateItem(ctx, newTestItem(alice, "Tablet", model.ItemTypeTechnology, model.ItemStatusKeep, base.AddDate(0, 2, 0)))
	s.CreateItem(ctx, newTestItem(bob, "Car", model.ItemTypeVehicle, model.ItemStatusKeep, base))

	tests := []struct {
		name   string
		filter model.ItemFilter
		want   []string
	}{
		{"no filter", model.ItemFilter{}, []string{"Coat", "Shirt", "Tablet"}},
		{"status", model.ItemFilter{Status: model.ItemStatusKeep}, []string{"Coat", "Tablet"}},
		{"type", model.ItemFilter{ItemType: model.ItemTypeClothing}, []string{"Coat", "Shirt"}},
		{"both", model.ItemFilter{Status: model.ItemStatusKeep, ItemType: model.ItemTypeClothing}, []string{"Coat"}},
		{"no match", model.ItemFilter{Status: model.ItemStatusSell}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.ListItems(ctx, alice, tt.filter)
			if err != nil {
				t.Fatalf("ListItems: %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(items))
			}
			for i, name := range tt.want {
				if items[i].Name != name {
					t.Errorf("item %d: expected %q, got %q", i, name, items[i].Name)
				}
			}
		})
	}

	n, err := s.CountItems(ctx, bob)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 1 {
		t.Errorf("expected bob to own 1 item, got %d", n)
	}
}

func TestItemPicture(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	s := &ItemStore{DB: database}
	alice := newTestOwner(t, database, "alice")
	bob := newTestOwner(t, database, "bob")

	item := newTestItem(alice, "Lamp", model.ItemTypeHousehold, model.ItemStatusKeep, time.Now())
	s.CreateItem(ctx, item)

	data, _, err := s.GetItemPicture(ctx, alice, item.ID)
	if err != nil {
		t.Fatalf("GetItemPicture: %v", err)
	}
	if data != nil {
		t.Error("expected no picture yet")
	}

	s.SetItemPicture(ctx, item.ID, []byte("first"), "image/jpeg")
	if err := s.SetItemPicture(ctx, item.ID, []byte("second"), "image/jpeg"); err != nil {
		t.Fatalf("replacing picture: %v", err)
	}

	data, mime, _ := s.GetItemPicture(ctx, alice, item.ID)
	if string(data) != "second" {
		t.Errorf("expected replaced picture data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	data, _, _ = s.GetItemPicture(ctx, bob, item.ID)
	if data != nil {
		t.Error("expected picture hidden from other owners")
	}

	if err := s.DeleteItemPicture(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItemPicture: %v", err)
	}
	data, _, _ = s.GetItemPicture(ctx, alice, item.ID)
	if data != nil {
		t.Error("expected picture removed")
	}
	if err := s.DeleteItemPicture(ctx, item.ID); err != nil {
		t.Errorf("deleting a missing picture: %v", err)
	}
}
