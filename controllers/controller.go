package controllers

import (
	"strconv"
	"strings"

	"restay/dto"
	apperrors "restay/errors"
	"restay/models"
	"restay/response"

	"github.com/gin-gonic/gin"
)

// parseID reads the numeric :id path parameter. On failure it writes the
// error response and reports false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondError maps a typed error onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeNotFound:
		response.NotFound(c)
	case apperrors.ErrCodeConstraintViolation:
		response.Conflict(c, apperrors.UserMessage(err))
	case apperrors.ErrCodeReferenceViolation,
		apperrors.ErrCodeValidation,
		apperrors.ErrCodeRequiredField,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidEmail,
		apperrors.ErrCodeInvalidRole,
		apperrors.ErrCodeInvalidOperation,
		apperrors.ErrCodeProfileNotFound:
		response.BadRequest(c, apperrors.UserMessage(err))
	case apperrors.ErrCodeInvalidCredentials,
		apperrors.ErrCodeInvalidToken,
		apperrors.ErrCodeUnauthorized:
		response.Unauthorized(c)
	default:
		response.ServerError(c)
	}
}

// joinViolations folds a collect-all validation result into one message.
func joinViolations(violations []string) string {
	return strings.Join(violations, "; ")
}

func toPropertyResponse(p models.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:              p.ID,
		Name:            p.Name,
		Type:            p.Type,
		Location:        p.Location,
		ContactInfo:     p.ContactInfo,
		TotalRooms:      p.TotalRooms,
		TotalBeds:       p.TotalBeds,
		Floors:          p.Floors,
		Images:          p.Images,
		Amenities:       p.Amenities,
		RoomTypes:       p.RoomTypes,
		Revenue:         p.Revenue,
		MonthlyRent:     p.MonthlyRent,
		OccupancyRate:   p.OccupancyRate,
		ActualOccupancy: p.ActualOccupancy,
		TotalCapacity:   p.TotalCapacity,
		ManagerID:       p.ManagerID,
		ManagerName:     p.ManagerName,
		RoomCount:       len(p.Rooms),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toRoomResponse(r models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		Number:     r.Number,
		Type:       r.Type,
		Capacity:   r.Capacity,
		Rent:       r.Rent,
		Status:     r.Status,
		Occupants:  r.Occupants,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toUserResponse(u models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Status:             u.Status,
		AssignedProperties: u.AssignedProperties,
		LastLogin:          u.LastLogin,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
