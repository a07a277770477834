package validator

import (
	"testing"

	"restay/constants"
	"restay/dto"
	"restay/models"

	"github.com/stretchr/testify/require"
)

func validPropertyForm() dto.PropertyForm {
	return dto.PropertyForm{
		Name:       "Sunrise PG",
		Type:       constants.PropertyTypeUnisex,
		Location:   "Koramangala",
		TotalRooms: 10,
		Floors:     2,
		RoomTypes: []models.RoomTypeTemplate{
			{Name: "Single", Capacity: 1, Price: 8000},
		},
	}
}

func TestPropertyFormValid(t *testing.T) {
	require.Empty(t, PropertyForm(validPropertyForm()))
}

func TestPropertyFormBoundaryValues(t *testing.T) {
	form := validPropertyForm()
	form.TotalRooms = 1
	form.Floors = 1
	require.Empty(t, PropertyForm(form))
}

func TestPropertyFormCollectsAllViolations(t *testing.T) {
	form := dto.PropertyForm{
		Name:       "   ",
		Type:       "mixed",
		Location:   "",
		TotalRooms: 0,
		Floors:     0,
	}

	violations := PropertyForm(form)
	require.Len(t, violations, 5)
	require.Contains(t, violations, "PG name is required")
	require.Contains(t, violations, "Location is required")
	require.Contains(t, violations, "Total rooms must be at least 1")
	require.Contains(t, violations, "Number of floors must be at least 1")
}

func TestPropertyFormRoomTypeRules(t *testing.T) {
	form := validPropertyForm()
	form.RoomTypes = []models.RoomTypeTemplate{
		{Name: "", Capacity: 0},
	}

	violations := PropertyForm(form)
	require.Len(t, violations, 2)
}

func TestRoomFormValid(t *testing.T) {
	form := dto.RoomForm{
		PropertyID: 1,
		Number:     "101",
		Type:       "Single",
		Capacity:   1,
		Rent:       8000,
	}
	require.Empty(t, RoomForm(form))
}

func TestRoomFormCollectsAllViolations(t *testing.T) {
	form := dto.RoomForm{
		Number:   " ",
		Type:     "",
		Capacity: 0,
		Rent:     -1,
		Status:   "occupied",
	}

	violations := RoomForm(form)
	require.Len(t, violations, 6)
}

func TestUserFormEmail(t *testing.T) {
	req := dto.CreateUserRequest{
		Name:  "Priya",
		Email: "not-an-email",
		Role:  constants.RoleManager,
	}
	violations := UserForm(req)
	require.Len(t, violations, 1)
	require.Contains(t, violations[0], "valid email")

	req.Email = "priya@restay.com"
	require.Empty(t, UserForm(req))
}

func TestValidatePassword(t *testing.T) {
	require.Error(t, ValidatePassword("short"))
	require.NoError(t, ValidatePassword("longer-password"))
}
