package dto

// ListQuery is the shared pagination/filter envelope for list endpoints.
type ListQuery struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Name  string `form:"name"`
}

// OccupancySummary is the derived read-model aggregate for one property.
type OccupancySummary struct {
	PropertyID      uint    `json:"pgId"`
	PropertyName    string  `json:"pgName"`
	TotalCapacity   int     `json:"totalCapacity"`
	ActualOccupancy int     `json:"actualOccupancy"`
	OccupancyRate   float64 `json:"occupancyRate"`
	RoomCount       int     `json:"roomCount"`
}
