package models

import (
	"fmt"
	"time"

	"restay/constants"

	"gorm.io/datatypes"
)

type Room struct {
	ID         uint                        `json:"id" gorm:"primaryKey"`
	PropertyID uint                        `json:"pgId" gorm:"index;not null"`
	Number     string                      `json:"number"`
	Type       string                      `json:"type"`
	Capacity   int                         `json:"capacity"`
	Rent       float64                     `json:"rent"`
	Status     string                      `json:"status" gorm:"default:vacant"`
	Occupants  datatypes.JSONSlice[string] `json:"students"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

func (r *Room) ValidateStatus() error {
	if !constants.IsValidRoomStatus(r.Status) {
		return fmt.Errorf("invalid status: %q, must be one of vacant, partial, full, maintenance", r.Status)
	}
	return nil
}

func (r *Room) ValidateCapacity() error {
	if r.Capacity < 1 {
		return fmt.Errorf("invalid capacity: %d, must be at least 1", r.Capacity)
	}
	if r.Rent < 0 {
		return fmt.Errorf("invalid rent: %.2f, must be 0 or greater", r.Rent)
	}
	return nil
}
