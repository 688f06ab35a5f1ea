package service

import (
	"context"
	"time"

	"github.com/erazemk/posest/internal/model"
)

// CheckupService manages checkups.
type CheckupService struct {
	Repo CheckupRepository
	Now  Clock
}

// NewCheckupService returns a CheckupService using the wall clock.
func NewCheckupService(repo CheckupRepository) *CheckupService {
	return &CheckupService{Repo: repo, Now: time.Now}
}

// Create starts a new checkup for owner, counting from now. A zero interval
// means the default of one month; an empty type means keep.
func (s *CheckupService) Create(ctx context.Context, ownerID int64, checkupType model.CheckupType, intervalMonths *int) (*model.Checkup, error) {
	months := model.DefaultCheckupInterval
	if intervalMonths != nil {
		months = *intervalMonths
	}
	if err := model.ValidateInterval(months); err != nil {
		return nil, invalid("interval_months", "%v", err)
	}
	if checkupType == "" {
		checkupType = model.CheckupTypeKeep
	}
	if !checkupType.Valid() {
		return nil, invalid("checkup_type", "unknown checkup type %q", checkupType)
	}

	c := &model.Checkup{
		OwnerID:         ownerID,
		Type:            checkupType,
		LastCheckupDate: s.Now().UTC(),
		IntervalMonths:  months,
	}
	if err := s.Repo.CreateCheckup(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the owner's checkup, or nil if it does not exist.
func (s *CheckupService) Get(ctx context.Context, ownerID, id int64) (*model.Checkup, error) {
	return s.Repo.GetCheckup(ctx, ownerID, id)
}

// ListForOwner returns the owner's checkups, most recently completed first.
// An empty checkupType lists every type.
func (s *CheckupService) ListForOwner(ctx context.Context, ownerID int64, checkupType model.CheckupType) ([]model.Checkup, error) {
	if checkupType != "" && !checkupType.Valid() {
		return nil, invalid("checkup_type", "unknown checkup type %q", checkupType)
	}
	return s.Repo.ListCheckups(ctx, ownerID, checkupType)
}

// UpdateInterval changes how often the checkup falls due, leaving the last
// checkup date alone. It returns nil if the checkup does not exist.
func (s *CheckupService) UpdateInterval(ctx context.Context, ownerID, id int64, months int) (*model.Checkup, error) {
	if err := model.ValidateInterval(months); err != nil {
		return nil, invalid("interval_months", "%v", err)
	}
	return s.mutate(ctx, ownerID, id, func(c *model.Checkup) error {
		return c.ChangeInterval(months)
	})
}

// Complete marks the checkup as performed now. It returns nil if the checkup
// does not exist.
func (s *CheckupService) Complete(ctx context.Context, ownerID, id int64) (*model.Checkup, error) {
	now := s.Now().UTC()
	return s.mutate(ctx, ownerID, id, func(c *model.Checkup) error {
		c.Complete(now)
		return nil
	})
}

// mutate loads a checkup, applies fn and saves the result.
func (s *CheckupService) mutate(ctx context.Context, ownerID, id int64, fn func(*model.Checkup) error) (*model.Checkup, error) {
	c, err := s.Repo.GetCheckup(ctx, ownerID, id)
	if err != nil || c == nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}

	found, err := s.Repo.UpdateCheckup(ctx, c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return c, nil
}
