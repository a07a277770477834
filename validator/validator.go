package validator

import (
	"fmt"
	"strings"

	"restay/constants"
	"restay/dto"
	"restay/errors"

	v10 "github.com/go-playground/validator/v10"
)

var validate = v10.New()

// PropertyForm checks raw property form values against the business rules.
// Every rule is evaluated so the caller can surface all violations in one
// pass; an empty result means the form is acceptable.
func PropertyForm(form dto.PropertyForm) []string {
	var violations []string

	if strings.TrimSpace(form.Name) == "" {
		violations = append(violations, "PG name is required")
	}
	if strings.TrimSpace(form.Location) == "" {
		violations = append(violations, "Location is required")
	}
	if form.TotalRooms < 1 {
		violations = append(violations, "Total rooms must be at least 1")
	}
	if form.Floors < 1 {
		violations = append(violations, "Number of floors must be at least 1")
	}
	if !constants.IsValidPropertyType(form.Type) {
		violations = append(violations, "Please select a valid PG type (Male, Female, or Unisex)")
	}
	for _, rt := range form.RoomTypes {
		if strings.TrimSpace(rt.Name) == "" {
			violations = append(violations, "Room type name is required")
		}
		if rt.Capacity < 1 {
			violations = append(violations, fmt.Sprintf("Room type %q capacity must be at least 1", rt.Name))
		}
	}

	return violations
}

// RoomForm checks raw room form values. Same contract as PropertyForm.
func RoomForm(form dto.RoomForm) []string {
	var violations []string

	if strings.TrimSpace(form.Number) == "" {
		violations = append(violations, "Room number is required")
	}
	if strings.TrimSpace(form.Type) == "" {
		violations = append(violations, "Room type is required")
	}
	if form.Capacity < 1 {
		violations = append(violations, "Capacity must be at least 1")
	}
	if form.Rent < 0 {
		violations = append(violations, "Rent must be 0 or greater")
	}
	if form.PropertyID == 0 {
		violations = append(violations, "Please select a PG")
	}
	if form.Status != "" && !constants.IsValidRoomStatus(form.Status) {
		violations = append(violations, "Please select a valid room status")
	}

	return violations
}

// UserForm checks raw account form values. Same contract as PropertyForm.
func UserForm(req dto.CreateUserRequest) []string {
	var violations []string

	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, "Name is required")
	}
	if err := validate.Var(req.Email, "required,email"); err != nil {
		violations = append(violations, "A valid email is required")
	}
	if !constants.IsValidRole(req.Role) {
		violations = append(violations, "Please select a valid role (Admin, Manager, Accountant, or Viewer)")
	}

	return violations
}

// ValidateEmail checks a single email address
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", err)
	}
	return nil
}

// ValidatePassword checks password strength for newly created accounts
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 6 characters", nil)
	}
	return nil
}
