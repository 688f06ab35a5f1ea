// Package service mediates between the HTTP API and the record store. Every
// operation works on a single record owned by the calling user. A record
// that does not exist (or belongs to someone else) is reported as a nil
// result or false, never as an error; errors are either *ValidationError or
// storage faults.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/model"
)

// ItemRepository stores owned items.
type ItemRepository interface {
	CreateItem(ctx context.Context, item *model.OwnedItem) error
	GetItem(ctx context.Context, ownerID int64, id uuid.UUID) (*model.OwnedItem, error)
	UpdateItem(ctx context.Context, item *model.OwnedItem) (bool, error)
	DeleteItem(ctx context.Context, ownerID int64, id uuid.UUID) (bool, error)
	ListItems(ctx context.Context, ownerID int64, filter model.ItemFilter) ([]model.OwnedItem, error)
}

// CheckupRepository stores checkups.
type CheckupRepository interface {
	CreateCheckup(ctx context.Context, c *model.Checkup) error
	GetCheckup(ctx context.Context, ownerID, id int64) (*model.Checkup, error)
	UpdateCheckup(ctx context.Context, c *model.Checkup) (bool, error)
	ListCheckups(ctx context.Context, ownerID int64, checkupType model.CheckupType) ([]model.Checkup, error)
}

// Clock returns the current time.
type Clock func() time.Time

// ValidationError reports input rejected before any store mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
