package dto

import "time"

// RoomForm carries raw form values for creating or editing a room.
type RoomForm struct {
	ID         uint     `json:"id"`
	PropertyID uint     `json:"pgId"`
	Number     string   `json:"number"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Rent       float64  `json:"rent"`
	Status     string   `json:"status"`
	Occupants  []string `json:"students"`
}

type RoomResponse struct {
	ID           uint      `json:"id"`
	PropertyID   uint      `json:"pgId"`
	PropertyName string    `json:"pgName,omitempty"`
	Number       string    `json:"number"`
	Type         string    `json:"type"`
	Capacity     int       `json:"capacity"`
	Rent         float64   `json:"rent"`
	Status       string    `json:"status"`
	Occupants    []string  `json:"students"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
