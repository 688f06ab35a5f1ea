package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/db"
	"github.com/erazemk/posest/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "testuser", "hash123", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", user.Username)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role 'user', got %q", user.Role)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", got.Username)
	}

	missing, err := GetUser(ctx, database, 999)
	if err != nil {
		t.Fatalf("GetUser missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestGetUserByUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "alice", "hash", model.RoleAdmin)

	user, err := GetUserByUsername(ctx, database, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Username != "alice" {
		t.Errorf("expected 'alice', got %q", user.Username)
	}

	if _, err := CreateUser(ctx, database, "alice", "hash", model.RoleUser); err == nil {
		t.Error("expected duplicate username to fail")
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "bob", "old", model.RoleUser)
	if err := UpdateUserPassword(ctx, database, user.ID, "new"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "new" {
		t.Errorf("expected hash 'new', got %q", got.PasswordHash)
	}
}

func TestDeleteUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	checkups := &CheckupStore{DB: database}
	items := &ItemStore{DB: database}

	user, _ := CreateUser(ctx, database, "carol", "hash", model.RoleUser)
	checkups.CreateCheckup(ctx, &model.Checkup{
		OwnerID: user.ID, Type: model.CheckupTypeKeep, LastCheckupDate: time.Now(), IntervalMonths: 1,
	})

	found, err := DeleteUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !found {
		t.Error("expected user to be found")
	}
	list, _ := checkups.ListCheckups(ctx, user.ID, "")
	if len(list) != 0 {
		t.Errorf("expected checkups removed with user, got %d", len(list))
	}

	found, _ = DeleteUser(ctx, database, user.ID)
	if found {
		t.Error("expected second delete to report not found")
	}

	// Owners of items are protected by the foreign key.
	dave, _ := CreateUser(ctx, database, "dave", "hash", model.RoleUser)
	items.CreateItem(ctx, &model.OwnedItem{
		ID: uuid.New(), OwnerID: dave.ID, Name: "Bike",
		ItemType: model.ItemTypeVehicle, Status: model.ItemStatusKeep,
		ItemReceivedDate: time.Now(), LastUsed: time.Now(),
	})
	if _, err := DeleteUser(ctx, database, dave.ID); err == nil {
		t.Error("expected deleting an item owner to fail")
	}
}
