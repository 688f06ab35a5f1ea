package api

import (
	"time"

	"github.com/erazemk/posest/internal/model"
)

type timeSpanResponse struct {
	Years       int    `json:"years"`
	Months      int    `json:"months"`
	Days        int    `json:"days"`
	Description string `json:"description"`
}

type itemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	PictureURL        string           `json:"picture_url"`
	ItemType          model.ItemType   `json:"item_type"`
	Status            model.ItemStatus `json:"status"`
	ItemReceivedDate  time.Time        `json:"item_received_date"`
	LastUsed          time.Time        `json:"last_used"`
	OwnershipDuration timeSpanResponse `json:"ownership_duration"`
	LastUsedDuration  timeSpanResponse `json:"last_used_duration"`
}

type checkupResponse struct {
	ID                    int64             `json:"id"`
	CheckupType           model.CheckupType `json:"checkup_type"`
	LastCheckupDate       time.Time         `json:"last_checkup_date"`
	CheckupIntervalMonths int               `json:"checkup_interval_months"`
	IsCheckupDue          bool              `json:"is_checkup_due"`
}

func newTimeSpanResponse(s model.TimeSpan) timeSpanResponse {
	return timeSpanResponse{Years: s.Years, Months: s.Months, Days: s.Days, Description: s.Description}
}

// newItemResponse renders an item with durations measured at now.
func newItemResponse(item *model.OwnedItem, now time.Time) itemResponse {
	return itemResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		PictureURL:        item.PictureURL,
		ItemType:          item.ItemType,
		Status:            item.Status,
		ItemReceivedDate:  item.ItemReceivedDate.UTC(),
		LastUsed:          item.LastUsed.UTC(),
		OwnershipDuration: newTimeSpanResponse(item.OwnershipDuration(now)),
		LastUsedDuration:  newTimeSpanResponse(item.LastUsedDuration(now)),
	}
}

func newCheckupResponse(c *model.Checkup, now time.Time) checkupResponse {
	return checkupResponse{
		ID:                    c.ID,
		CheckupType:           c.Type,
		LastCheckupDate:       c.LastCheckupDate.UTC(),
		CheckupIntervalMonths: c.IntervalMonths,
		IsCheckupDue:          c.IsDue(now),
	}
}
