package models

import (
	"fmt"
	"time"

	"restay/constants"

	"gorm.io/datatypes"
)

// RoomTypeTemplate is a named capacity/price/amenity profile owned by a
// property. Templates live on the property row as a JSON column; rooms
// reference them by type name.
type RoomTypeTemplate struct {
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Price     float64  `json:"price"`
	Amenities []string `json:"amenities"`
}

type Property struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contactInfo"`
	TotalRooms  int       `json:"totalRooms"`
	TotalBeds   int       `json:"totalBeds"`
	Floors      int       `json:"floors"`

	Images    datatypes.JSONSlice[string]           `json:"images"`
	Amenities datatypes.JSONSlice[string]           `json:"amenities"`
	RoomTypes datatypes.JSONSlice[RoomTypeTemplate] `json:"roomTypes"`

	// Derived aggregates, recomputed from full listings after each mutation.
	Revenue         float64 `json:"revenue"`
	MonthlyRent     float64 `json:"monthlyRent"`
	OccupancyRate   float64 `json:"occupancyRate"`
	ActualOccupancy int     `json:"actualOccupancy"`
	TotalCapacity   int     `json:"totalCapacity"`

	ManagerID   *uint  `json:"managerId,omitempty"`
	ManagerName string `json:"manager,omitempty"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:PropertyID"`
}

func (p *Property) ValidateType() error {
	if !constants.IsValidPropertyType(p.Type) {
		return fmt.Errorf("invalid property type: %q, must be one of male, female, unisex", p.Type)
	}
	return nil
}

func (p *Property) ValidateCounts() error {
	if p.TotalRooms < 1 {
		return fmt.Errorf("invalid totalRooms: %d, must be at least 1", p.TotalRooms)
	}
	if p.Floors < 1 {
		return fmt.Errorf("invalid floors: %d, must be at least 1", p.Floors)
	}
	return nil
}

// RoomTypeByName returns the template with the given name, nil if absent.
func (p *Property) RoomTypeByName(name string) *RoomTypeTemplate {
	for i := range p.RoomTypes {
		if p.RoomTypes[i].Name == name {
			return &p.RoomTypes[i]
		}
	}
	return nil
}
