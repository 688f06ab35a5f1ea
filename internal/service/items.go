package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/model"
)

// ItemService manages owned items.
type ItemService struct {
	Repo ItemRepository
	Now  Clock
}

// NewItemService returns an ItemService using the wall clock.
func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{Repo: repo, Now: time.Now}
}

// NewItem holds the caller-supplied fields of an item to create. A zero
// Status means Keep; nil dates mean the creation time.
type NewItem struct {
	Name             string
	PictureURL       string
	ItemType         model.ItemType
	Status           model.ItemStatus
	ItemReceivedDate *time.Time
	LastUsed         *time.Time
}

// Create stores a new item for owner.
func (s *ItemService) Create(ctx context.Context, ownerID int64, in NewItem) (*model.OwnedItem, error) {
	if in.Name == "" {
		return nil, invalid("name", "required")
	}
	if in.ItemType == "" {
		return nil, invalid("item_type", "required")
	}
	if in.Status == "" {
		in.Status = model.ItemStatusKeep
	}
	if err := validateEnums(&in.ItemType, &in.Status); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	item := &model.OwnedItem{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Name:             in.Name,
		PictureURL:       in.PictureURL,
		ItemType:         in.ItemType,
		Status:           in.Status,
		ItemReceivedDate: orNow(in.ItemReceivedDate, now),
		LastUsed:         orNow(in.LastUsed, now),
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns the owner's item, or nil if it does not exist.
func (s *ItemService) Get(ctx context.Context, ownerID int64, id uuid.UUID) (*model.OwnedItem, error) {
	return s.Repo.GetItem(ctx, ownerID, id)
}

// Update overwrites only the fields named by patch and returns the result,
// or nil if the item does not exist.
func (s *ItemService) Update(ctx context.Context, ownerID int64, id uuid.UUID, patch model.ItemPatch) (*model.OwnedItem, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := validateEnums(patch.ItemType, patch.Status); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetItem(ctx, ownerID, id)
	if err != nil || item == nil {
		return nil, err
	}
	if patch.Empty() {
		return item, nil
	}

	patch.Apply(item)
	found, err := s.Repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if !found {
		// Deleted between read and write.
		return nil, nil
	}
	return item, nil
}

// Delete permanently removes the owner's item. It reports false if the item
// does not exist.
func (s *ItemService) Delete(ctx context.Context, ownerID int64, id uuid.UUID) (bool, error) {
	return s.Repo.DeleteItem(ctx, ownerID, id)
}

// ListForOwner returns the owner's items matching every non-zero filter field.
func (s *ItemService) ListForOwner(ctx context.Context, ownerID int64, filter model.ItemFilter) ([]model.OwnedItem, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("status", "unknown status %q", filter.Status)
	}
	if filter.ItemType != "" && !filter.ItemType.Valid() {
		return nil, invalid("item_type", "unknown item type %q", filter.ItemType)
	}
	return s.Repo.ListItems(ctx, ownerID, filter)
}

// validateEnums checks the enum values that are present.
func validateEnums(itemType *model.ItemType, status *model.ItemStatus) error {
	if itemType != nil && !itemType.Valid() {
		return invalid("item_type", "unknown item type %q", *itemType)
	}
	if status != nil && !status.Valid() {
		return invalid("status", "unknown status %q", *status)
	}
	return nil
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil {
		return now
	}
	return t.UTC()
}
