package dto

import (
	"time"

	"restay/models"
)

// PropertyForm carries raw form values for creating or editing a property.
// A zero ID denotes a create; a nonzero ID denotes an update.
type PropertyForm struct {
	ID          uint                      `json:"id"`
	Name        string                    `json:"name"`
	Type        string                    `json:"type"`
	Location    string                    `json:"location"`
	ContactInfo string                    `json:"contactInfo"`
	TotalRooms  int                       `json:"totalRooms"`
	TotalBeds   int                       `json:"totalBeds"`
	Floors      int                       `json:"floors"`
	ManagerID   string                    `json:"managerId"`
	Images      []string                  `json:"images"`
	RoomTypes   []models.RoomTypeTemplate `json:"roomTypes"`
	// Allocations are consumed once at creation to generate rooms; they are
	// never persisted and are ignored on update.
	Allocations []FloorAllocation `json:"roomAllocations,omitempty"`
}

// FloorAllocation describes how many rooms of one type to create per floor.
type FloorAllocation struct {
	RoomType      string `json:"roomType"`
	RoomsPerFloor int    `json:"roomsPerFloor"`
}

type PropertyResponse struct {
	ID              uint                      `json:"id"`
	Name            string                    `json:"name"`
	Type            string                    `json:"type"`
	Location        string                    `json:"location"`
	ContactInfo     string                    `json:"contactInfo"`
	TotalRooms      int                       `json:"totalRooms"`
	TotalBeds       int                       `json:"totalBeds"`
	Floors          int                       `json:"floors"`
	Images          []string                  `json:"images"`
	Amenities       []string                  `json:"amenities"`
	RoomTypes       []models.RoomTypeTemplate `json:"roomTypes"`
	Revenue         float64                   `json:"revenue"`
	MonthlyRent     float64                   `json:"monthlyRent"`
	OccupancyRate   float64                   `json:"occupancyRate"`
	ActualOccupancy int                       `json:"actualOccupancy"`
	TotalCapacity   int                       `json:"totalCapacity"`
	ManagerID       *uint                     `json:"managerId,omitempty"`
	ManagerName     string                    `json:"manager,omitempty"`
	RoomCount       int                       `json:"roomCount"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// BulkCapacityRequest updates capacity on every room of one type under a
// property.
type BulkCapacityRequest struct {
	PropertyID   uint   `json:"pgId" binding:"required"`
	RoomTypeName string `json:"roomType" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required"`
}

type ScoredProperty struct {
	Property models.Property `json:"property"`
	Score    int             `json:"score"`
}
