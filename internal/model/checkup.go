package model

import (
	"errors"
	"time"
)

// DefaultCheckupInterval is the interval used when none is given.
const DefaultCheckupInterval = 1

// MaxCheckupInterval is the longest accepted interval, one hundred years.
const MaxCheckupInterval = 1200

// ErrInvalidInterval is returned for checkup intervals outside
// [1, MaxCheckupInterval] months.
var ErrInvalidInterval = errors.New("checkup interval must be between 1 and 1200 months")

// CheckupType says which pile of items a checkup reviews.
type CheckupType string

// Checkup types.
const (
	CheckupTypeKeep CheckupType = "keep"
	CheckupTypeGive CheckupType = "give"
)

// Valid reports whether t is a known checkup type.
func (t CheckupType) Valid() bool {
	return t == CheckupTypeKeep || t == CheckupTypeGive
}

// Checkup is a recurring reminder to review owned items.
type Checkup struct {
	ID              int64
	OwnerID         int64
	Type            CheckupType
	LastCheckupDate time.Time
	IntervalMonths  int
}

// NextDue returns when the checkup next falls due.
func (c *Checkup) NextDue() time.Time {
	return AddMonths(c.LastCheckupDate, c.IntervalMonths)
}

// IsDue reports whether the checkup is due at now.
func (c *Checkup) IsDue(now time.Time) bool {
	return !now.Before(c.NextDue())
}

// Complete records a checkup performed at now.
func (c *Checkup) Complete(now time.Time) {
	c.LastCheckupDate = now
}

// ChangeInterval replaces the interval, keeping the last checkup date.
func (c *Checkup) ChangeInterval(months int) error {
	if err := ValidateInterval(months); err != nil {
		return err
	}
	c.IntervalMonths = months
	return nil
}

// ValidateInterval checks that months is within the accepted range.
func ValidateInterval(months int) error {
	if months < 1 || months > MaxCheckupInterval {
		return ErrInvalidInterval
	}
	return nil
}
