package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/posest/internal/model"
)

// ItemStore persists owned items. Lookups are scoped to an owner: items of
// other owners behave as if they did not exist.
type ItemStore struct {
	DB *sql.DB
}

const itemColumns = `id, owner_id, name, picture_url, item_type, status, item_received_date, last_used`

// CreateItem inserts a new item. The caller assigns the ID.
func (s *ItemStore) CreateItem(ctx context.Context, item *model.OwnedItem) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(), item.OwnerID, item.Name, item.PictureURL,
		string(item.ItemType), string(item.Status),
		item.ItemReceivedDate.UTC(), item.LastUsed.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	return nil
}

// GetItem returns an item by ID, or nil if the owner has no such item.
func (s *ItemStore) GetItem(ctx context.Context, ownerID int64, id uuid.UUID) (*model.OwnedItem, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// UpdateItem overwrites every mutable column of an item. It reports false if
// the item does not exist.
func (s *ItemStore) UpdateItem(ctx context.Context, item *model.OwnedItem) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE items SET name = ?, picture_url = ?, item_type = ?, status = ?,
		        item_received_date = ?, last_used = ?
		 WHERE id = ? AND owner_id = ?`,
		item.Name, item.PictureURL, string(item.ItemType), string(item.Status),
		item.ItemReceivedDate.UTC(), item.LastUsed.UTC(),
		item.ID.String(), item.OwnerID,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return affected(result, "updating item")
}

// DeleteItem permanently removes an item and its picture. It reports false
// if the item does not exist.
func (s *ItemStore) DeleteItem(ctx context.Context, ownerID int64, id uuid.UUID) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return affected(result, "deleting item")
}

// ListItems returns an owner's items, optionally filtered by status and type.
func (s *ItemStore) ListItems(ctx context.Context, ownerID int64, filter model.ItemFilter) ([]model.OwnedItem, error) {
	where := []string{"owner_id = ?"}
	args := []any{ownerID}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.ItemType != "" {
		where = append(where, "item_type = ?")
		args = append(args, string(filter.ItemType))
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY item_received_date, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.OwnedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CountItems returns how many items a user owns.
func (s *ItemStore) CountItems(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE owner_id = ?`, ownerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// SetItemPicture stores picture data for an item, replacing any previous one.
func (s *ItemStore) SetItemPicture(ctx context.Context, id uuid.UUID, data []byte, mime string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO item_pictures (item_id, data, mime) VALUES (?, ?, ?)
		 ON CONFLICT (item_id) DO UPDATE SET data = excluded.data, mime = excluded.mime`,
		id.String(), data, mime,
	)
	if err != nil {
		return fmt.Errorf("setting item picture: %w", err)
	}
	return nil
}

// DeleteItemPicture removes an item's stored picture, if any.
func (s *ItemStore) DeleteItemPicture(ctx context.Context, id uuid.UUID) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM item_pictures WHERE item_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting item picture: %w", err)
	}
	return nil
}

// GetItemPicture returns an item's picture data and MIME type. Data is nil if
// the owner has no such item or the item has no picture.
func (s *ItemStore) GetItemPicture(ctx context.Context, ownerID int64, id uuid.UUID) ([]byte, string, error) {
	var data []byte
	var mime string
	err := s.DB.QueryRowContext(ctx,
		`SELECT p.data, p.mime FROM item_pictures p
		 JOIN items i ON i.id = p.item_id
		 WHERE p.item_id = ? AND i.owner_id = ?`,
		id.String(), ownerID,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item picture: %w", err)
	}
	return data, mime, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*model.OwnedItem, error) {
	item := &model.OwnedItem{}
	var itemType, status string
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &item.PictureURL, &itemType, &status,
		&item.ItemReceivedDate, &item.LastUsed)
	if err != nil {
		return nil, err
	}
	item.ItemType = model.ItemType(itemType)
	item.Status = model.ItemStatus(status)
	return item, nil
}

func affected(result sql.Result, op string) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
