package services

import (
	"context"
	"testing"

	"restay/constants"
	apperrors "restay/errors"
	"restay/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestRoomService(t *testing.T) *RoomService {
	t.Helper()
	return NewRoomService(RoomServiceOptions{DB: testDB(t)})
}

func seedRoomProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:       "Sunrise PG",
		Type:       constants.PropertyTypeUnisex,
		Location:   "Koramangala",
		TotalRooms: 4,
		Floors:     1,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestCreateRoom(t *testing.T) {
	svc := newTestRoomService(t)
	ctx := context.Background()
	property := seedRoomProperty(t, svc.db)

	room := &models.Room{
		PropertyID: property.ID,
		Number:     "101",
		Type:       "Single",
		Capacity:   1,
		Rent:       8000,
		Status:     constants.RoomStatusVacant,
	}
	require.NoError(t, svc.Create(ctx, room))
	require.NotZero(t, room.ID)
}

func TestCreateRoomDanglingProperty(t *testing.T) {
	svc := newTestRoomService(t)

	room := &models.Room{
		PropertyID: 777,
		Number:     "101",
		Type:       "Single",
		Capacity:   1,
		Status:     constants.RoomStatusVacant,
	}
	err := svc.Create(context.Background(), room)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeReferenceViolation, apperrors.CodeOf(err))
}

func TestCreateRoomInvalidStatus(t *testing.T) {
	svc := newTestRoomService(t)
	property := seedRoomProperty(t, svc.db)

	room := &models.Room{
		PropertyID: property.ID,
		Number:     "101",
		Type:       "Single",
		Capacity:   1,
		Status:     "occupied",
	}
	err := svc.Create(context.Background(), room)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestBulkUpdateCapacity(t *testing.T) {
	svc := newTestRoomService(t)
	ctx := context.Background()
	property := seedRoomProperty(t, svc.db)

	rooms := []models.Room{
		{PropertyID: property.ID, Number: "101", Type: "Double", Capacity: 2, Status: constants.RoomStatusVacant, Occupants: datatypes.NewJSONSlice([]string{})},
		{PropertyID: property.ID, Number: "102", Type: "Double", Capacity: 2, Status: constants.RoomStatusVacant, Occupants: datatypes.NewJSONSlice([]string{})},
		{PropertyID: property.ID, Number: "103", Type: "Single", Capacity: 1, Status: constants.RoomStatusVacant, Occupants: datatypes.NewJSONSlice([]string{})},
	}
	require.NoError(t, svc.db.Create(&rooms).Error)

	affected, err := svc.BulkUpdateCapacity(ctx, property.ID, "Double", 4)
	require.NoError(t, err)
	require.EqualValues(t, 2, affected)

	var single models.Room
	require.NoError(t, svc.db.Where("type = ?", "Single").First(&single).Error)
	require.Equal(t, 1, single.Capacity)
}

func TestBulkUpdateCapacityNoMatches(t *testing.T) {
	svc := newTestRoomService(t)
	property := seedRoomProperty(t, svc.db)

	affected, err := svc.BulkUpdateCapacity(context.Background(), property.ID, "Penthouse", 4)
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestBulkUpdateCapacityRejectsZero(t *testing.T) {
	svc := newTestRoomService(t)

	_, err := svc.BulkUpdateCapacity(context.Background(), 1, "Double", 0)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestDeleteRoomMissing(t *testing.T) {
	svc := newTestRoomService(t)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}
