package builders

import (
	"testing"
	"time"

	"restay/constants"
	"restay/dto"
	"restay/models"

	"github.com/stretchr/testify/require"
)

func TestBuildPropertyFromForm(t *testing.T) {
	form := dto.PropertyForm{
		Name:       "  Sunrise PG  ",
		Type:       constants.PropertyTypeFemale,
		Location:   " Koramangala ",
		TotalRooms: 10,
		TotalBeds:  20,
		Floors:     2,
		RoomTypes: []models.RoomTypeTemplate{
			{Name: " Single ", Capacity: 1, Price: 8000},
		},
	}

	property, report := NewPropertyBuilder().WithForm(form).Build()
	require.Equal(t, "Sunrise PG", property.Name)
	require.Equal(t, "Koramangala", property.Location)
	require.Equal(t, "Single", property.RoomTypes[0].Name)
	require.NotNil(t, property.RoomTypes[0].Amenities)
	require.False(t, report.ManagerUnavailable)
}

func TestBuildPropertyClampsCounts(t *testing.T) {
	form := dto.PropertyForm{
		Name:       "Tiny PG",
		Type:       constants.PropertyTypeMale,
		Location:   "BTM",
		TotalRooms: 0,
		TotalBeds:  -3,
		Floors:     0,
	}

	property, _ := NewPropertyBuilder().WithForm(form).Build()
	require.Equal(t, 1, property.TotalRooms)
	require.Equal(t, 1, property.TotalBeds)
	require.Equal(t, 1, property.Floors)
}

func TestWithManagerResolvesKnownManager(t *testing.T) {
	managers := []models.User{
		{ID: 7, Name: "Priya", Role: constants.RoleManager},
	}

	property, report := NewPropertyBuilder().
		WithForm(dto.PropertyForm{Name: "PG", Type: constants.PropertyTypeUnisex, Location: "X", TotalRooms: 1, Floors: 1}).
		WithManager("7", managers).
		Build()

	require.False(t, report.ManagerUnavailable)
	require.NotNil(t, property.ManagerID)
	require.EqualValues(t, 7, *property.ManagerID)
	require.Equal(t, "Priya", property.ManagerName)
}

func TestWithManagerDropsUnknownManager(t *testing.T) {
	property, report := NewPropertyBuilder().
		WithForm(dto.PropertyForm{Name: "PG", Type: constants.PropertyTypeUnisex, Location: "X", TotalRooms: 1, Floors: 1}).
		WithManager("42", nil).
		Build()

	// The assignment is dropped but the build still succeeds.
	require.True(t, report.ManagerUnavailable)
	require.Nil(t, property.ManagerID)
	require.Empty(t, property.ManagerName)
}

func TestWithManagerSkipsEmptySelection(t *testing.T) {
	for _, id := range []string{"", "none"} {
		property, report := NewPropertyBuilder().
			WithForm(dto.PropertyForm{Name: "PG", Type: constants.PropertyTypeUnisex, Location: "X", TotalRooms: 1, Floors: 1}).
			WithManager(id, nil).
			Build()

		require.False(t, report.ManagerUnavailable)
		require.Nil(t, property.ManagerID)
	}
}

func TestWithExistingCarriesAggregates(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	prior := &models.Property{
		Revenue:         120000,
		MonthlyRent:     45000,
		OccupancyRate:   80,
		ActualOccupancy: 16,
		TotalCapacity:   20,
		CreatedAt:       created,
	}

	property, _ := NewPropertyBuilder().
		WithForm(dto.PropertyForm{ID: 3, Name: "PG", Type: constants.PropertyTypeUnisex, Location: "X", TotalRooms: 1, Floors: 1}).
		WithExisting(prior).
		Build()

	require.EqualValues(t, 3, property.ID)
	require.Equal(t, 120000.0, property.Revenue)
	require.Equal(t, 45000.0, property.MonthlyRent)
	require.Equal(t, 80.0, property.OccupancyRate)
	require.Equal(t, 16, property.ActualOccupancy)
	require.Equal(t, 20, property.TotalCapacity)
	require.Equal(t, created, property.CreatedAt)
}

func TestBuildUserAdminGetsEmptyAssignments(t *testing.T) {
	user := BuildUser(dto.CreateUserRequest{
		Name:               " Admin ",
		Email:              " Admin@Restay.COM ",
		Role:               constants.RoleAdmin,
		AssignedProperties: []string{"Sunrise PG"},
	})

	require.Equal(t, "Admin", user.Name)
	require.Equal(t, "admin@restay.com", user.Email)
	require.Empty(t, user.AssignedProperties)
	require.Equal(t, constants.UserStatusActive, user.Status)
}

func TestBuildRoomDefaults(t *testing.T) {
	room := BuildRoom(dto.RoomForm{
		PropertyID: 1,
		Number:     " 101 ",
		Type:       "Single",
		Capacity:   0,
	})

	require.Equal(t, "101", room.Number)
	require.Equal(t, constants.RoomStatusVacant, room.Status)
	require.Equal(t, 1, room.Capacity)
	require.NotNil(t, room.Occupants)
}
