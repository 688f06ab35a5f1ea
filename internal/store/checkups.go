package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/posest/internal/model"
)

// CheckupStore persists checkups, scoped to their owner.
type CheckupStore struct {
	DB *sql.DB
}

const checkupColumns = `id, owner_id, checkup_type, last_checkup_date, checkup_interval_months`

// CreateCheckup inserts a checkup and sets its ID.
func (s *CheckupStore) CreateCheckup(ctx context.Context, c *model.Checkup) error {
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO checkups (owner_id, checkup_type, last_checkup_date, checkup_interval_months)
		 VALUES (?, ?, ?, ?)`,
		c.OwnerID, string(c.Type), c.LastCheckupDate.UTC(), c.IntervalMonths,
	)
	if err != nil {
		return fmt.Errorf("creating checkup: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting checkup id: %w", err)
	}
	c.ID = id
	return nil
}

// GetCheckup returns a checkup by ID, or nil if the owner has no such checkup.
func (s *CheckupStore) GetCheckup(ctx context.Context, ownerID, id int64) (*model.Checkup, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+checkupColumns+` FROM checkups WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	c, err := scanCheckup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting checkup: %w", err)
	}
	return c, nil
}

// UpdateCheckup saves the last checkup date and interval. It reports false
// if the checkup does not exist.
func (s *CheckupStore) UpdateCheckup(ctx context.Context, c *model.Checkup) (bool, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE checkups SET last_checkup_date = ?, checkup_interval_months = ?
		 WHERE id = ? AND owner_id = ?`,
		c.LastCheckupDate.UTC(), c.IntervalMonths, c.ID, c.OwnerID,
	)
	if err != nil {
		return false, fmt.Errorf("updating checkup: %w", err)
	}
	return affected(result, "updating checkup")
}

// ListCheckups returns an owner's checkups, most recently completed first.
// An empty checkupType matches every type.
func (s *CheckupStore) ListCheckups(ctx context.Context, ownerID int64, checkupType model.CheckupType) ([]model.Checkup, error) {
	var rows *sql.Rows
	var err error

	if checkupType != "" {
		rows, err = s.DB.QueryContext(ctx,
			`SELECT `+checkupColumns+` FROM checkups
			 WHERE owner_id = ? AND checkup_type = ?
			 ORDER BY last_checkup_date DESC, id DESC`,
			ownerID, string(checkupType),
		)
	} else {
		rows, err = s.DB.QueryContext(ctx,
			`SELECT `+checkupColumns+` FROM checkups
			 WHERE owner_id = ?
			 ORDER BY last_checkup_date DESC, id DESC`,
			ownerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing checkups: %w", err)
	}
	defer rows.Close()

	var checkups []model.Checkup
	for rows.Next() {
		c, err := scanCheckup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning checkup: %w", err)
		}
		checkups = append(checkups, *c)
	}
	return checkups, rows.Err()
}

func scanCheckup(row scanner) (*model.Checkup, error) {
	c := &model.Checkup{}
	var checkupType string
	if err := row.Scan(&c.ID, &c.OwnerID, &checkupType, &c.LastCheckupDate, &c.IntervalMonths); err != nil {
		return nil, err
	}
	c.Type = model.CheckupType(checkupType)
	return c, nil
}
