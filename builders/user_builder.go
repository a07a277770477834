package builders

import (
	"strings"
	"time"

	"restay/constants"
	"restay/dto"
	"restay/models"

	"gorm.io/datatypes"
)

// BuildUser maps an account creation request onto the persistence shape.
// Admins carry an empty assignment list: they have implicit access to every
// property, so per-property assignments would only drift.
func BuildUser(req dto.CreateUserRequest) models.User {
	assigned := req.AssignedProperties
	if req.Role == constants.RoleAdmin || assigned == nil {
		assigned = []string{}
	}

	status := constants.UserStatusActive

	return models.User{
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Role:               req.Role,
		Status:             status,
		AssignedProperties: datatypes.NewJSONSlice(assigned),
		LastLogin:          time.Now(),
	}
}

// BuildRoom maps a room form onto the persistence shape, defaulting the
// status and occupant list.
func BuildRoom(form dto.RoomForm) models.Room {
	status := form.Status
	if status == "" {
		status = constants.RoomStatusVacant
	}
	occupants := form.Occupants
	if occupants == nil {
		occupants = []string{}
	}

	return models.Room{
		ID:         form.ID,
		PropertyID: form.PropertyID,
		Number:     strings.TrimSpace(form.Number),
		Type:       strings.TrimSpace(form.Type),
		Capacity:   clampMin(form.Capacity, 1),
		Rent:       form.Rent,
		Status:     status,
		Occupants:  datatypes.NewJSONSlice(occupants),
	}
}
