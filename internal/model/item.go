package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemType is the category of an owned item.
type ItemType string

// Item types.
const (
	ItemTypeClothing   ItemType = "Clothing"
	ItemTypeTechnology ItemType = "Technology"
	ItemTypeHousehold  ItemType = "Household Item"
	ItemTypeVehicle    ItemType = "Vehicle"
	ItemTypeOther      ItemType = "Other"
)

// ItemTypes lists every known item type in display order.
var ItemTypes = []ItemType{
	ItemTypeClothing,
	ItemTypeTechnology,
	ItemTypeHousehold,
	ItemTypeVehicle,
	ItemTypeOther,
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ItemStatus is what the owner intends to do with an item.
type ItemStatus string

// Item statuses.
const (
	ItemStatusKeep    ItemStatus = "Keep"
	ItemStatusGive    ItemStatus = "Give"
	ItemStatusDonate  ItemStatus = "Donate"
	ItemStatusSell    ItemStatus = "Sell"
	ItemStatusDiscard ItemStatus = "Discard"
)

// ItemStatuses lists every known item status.
var ItemStatuses = []ItemStatus{
	ItemStatusKeep,
	ItemStatusGive,
	ItemStatusDonate,
	ItemStatusSell,
	ItemStatusDiscard,
}

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	for _, known := range ItemStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OwnedItem is a possession tracked by a user.
type OwnedItem struct {
	ID               uuid.UUID
	OwnerID          int64
	Name             string
	PictureURL       string
	ItemType         ItemType
	Status           ItemStatus
	ItemReceivedDate time.Time
	LastUsed         time.Time
}

// OwnershipDuration is the time elapsed since the item was received.
func (i *OwnedItem) OwnershipDuration(now time.Time) TimeSpan {
	return ComputeTimeSpan(i.ItemReceivedDate, now)
}

// LastUsedDuration is the time elapsed since the item was last used.
func (i *OwnedItem) LastUsedDuration(now time.Time) TimeSpan {
	return ComputeTimeSpan(i.LastUsed, now)
}

// ItemPatch names the fields of an item to overwrite. Nil fields are left
// untouched.
type ItemPatch struct {
	Name             *string
	PictureURL       *string
	ItemType         *ItemType
	Status           *ItemStatus
	ItemReceivedDate *time.Time
	LastUsed         *time.Time
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.PictureURL == nil && p.ItemType == nil &&
		p.Status == nil && p.ItemReceivedDate == nil && p.LastUsed == nil
}

// Apply overwrites the fields named by the patch.
func (p ItemPatch) Apply(item *OwnedItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.PictureURL != nil {
		item.PictureURL = *p.PictureURL
	}
	if p.ItemType != nil {
		item.ItemType = *p.ItemType
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.ItemReceivedDate != nil {
		item.ItemReceivedDate = *p.ItemReceivedDate
	}
	if p.LastUsed != nil {
		item.LastUsed = *p.LastUsed
	}
}

// ItemFilter narrows an owner's item listing. Zero values match everything.
type ItemFilter struct {
	Status   ItemStatus
	ItemType ItemType
}
