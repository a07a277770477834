package services

import (
	"context"
	"errors"
	"testing"

	"restay/constants"
	apperrors "restay/errors"
	"restay/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bulkCall struct {
	propertyID uint
	roomType   string
	capacity   int
}

type recordingUpdater struct {
	db    *gorm.DB
	calls []bulkCall
	fail  bool
}

func (r *recordingUpdater) BulkUpdateCapacity(ctx context.Context, propertyID uint, roomTypeName string, capacity int) (int64, error) {
	r.calls = append(r.calls, bulkCall{propertyID, roomTypeName, capacity})
	if r.fail {
		return 0, errors.New("store unavailable")
	}
	result := r.db.Model(&models.Room{}).
		Where("property_id = ? AND type = ?", propertyID, roomTypeName).
		Update("capacity", capacity)
	return result.RowsAffected, result.Error
}

func seedReconcileFixture(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()

	property := &models.Property{
		Name:       "Sunrise PG",
		Type:       constants.PropertyTypeUnisex,
		Location:   "Koramangala",
		TotalRooms: 4,
		Floors:     1,
		RoomTypes: datatypes.NewJSONSlice([]models.RoomTypeTemplate{
			{Name: "Single", Capacity: 1, Price: 8000, Amenities: []string{}},
			{Name: "Double", Capacity: 2, Price: 6000, Amenities: []string{}},
		}),
	}
	require.NoError(t, db.Create(property).Error)

	rooms := []models.Room{
		{PropertyID: property.ID, Number: "101", Type: "Single", Capacity: 1, Rent: 8000, Status: constants.RoomStatusFull, Occupants: datatypes.NewJSONSlice([]string{"Asha"})},
		{PropertyID: property.ID, Number: "102", Type: "Double", Capacity: 2, Rent: 6000, Status: constants.RoomStatusPartial, Occupants: datatypes.NewJSONSlice([]string{"Ravi"})},
		{PropertyID: property.ID, Number: "103", Type: "Double", Capacity: 2, Rent: 6000, Status: constants.RoomStatusVacant, Occupants: datatypes.NewJSONSlice([]string{})},
	}
	require.NoError(t, db.Create(&rooms).Error)
	return property
}

func TestRefreshAllComputesAggregates(t *testing.T) {
	db := testDB(t)
	property := seedReconcileFixture(t, db)

	svc := NewReconcileService(ReconcileServiceOptions{DB: db, Rooms: &recordingUpdater{db: db}})
	require.NoError(t, svc.RefreshAll(context.Background()))

	var got models.Property
	require.NoError(t, db.First(&got, property.ID).Error)
	require.Equal(t, 5, got.TotalCapacity)
	require.Equal(t, 2, got.ActualOccupancy)
	require.InDelta(t, 40.0, got.OccupancyRate, 0.001)
	// Rent accrues only from occupied rooms.
	require.Equal(t, 14000.0, got.MonthlyRent)

	summaries := svc.OccupancySummaries()
	require.Len(t, summaries, 1)
	require.Equal(t, property.ID, summaries[0].PropertyID)
	require.Equal(t, 5, summaries[0].TotalCapacity)
	require.Equal(t, 3, summaries[0].RoomCount)
}

func TestPropertyUpdatedReconcilesChangedTemplate(t *testing.T) {
	db := testDB(t)
	property := seedReconcileFixture(t, db)

	updater := &recordingUpdater{db: db}
	svc := NewReconcileService(ReconcileServiceOptions{DB: db, Rooms: updater})

	prior := *property
	updated := *property
	updated.RoomTypes = datatypes.NewJSONSlice([]models.RoomTypeTemplate{
		{Name: "Single", Capacity: 1, Price: 8000, Amenities: []string{}},
		{Name: "Double", Capacity: 4, Price: 6000, Amenities: []string{}},
	})

	require.NoError(t, svc.PropertyUpdated(context.Background(), &prior, &updated))

	// Exactly one bulk update, for the one template whose capacity changed.
	require.Len(t, updater.calls, 1)
	require.Equal(t, bulkCall{property.ID, "Double", 4}, updater.calls[0])

	var doubles []models.Room
	require.NoError(t, db.Where("property_id = ? AND type = ?", property.ID, "Double").Find(&doubles).Error)
	for _, room := range doubles {
		require.Equal(t, 4, room.Capacity)
	}

	// Untouched template keeps its capacity.
	var single models.Room
	require.NoError(t, db.Where("property_id = ? AND type = ?", property.ID, "Single").First(&single).Error)
	require.Equal(t, 1, single.Capacity)

	// Aggregates follow the new capacities.
	var got models.Property
	require.NoError(t, db.First(&got, property.ID).Error)
	require.Equal(t, 9, got.TotalCapacity)
}

func TestPropertyUpdatedIgnoresRenamedTemplate(t *testing.T) {
	db := testDB(t)
	property := seedReconcileFixture(t, db)

	updater := &recordingUpdater{db: db}
	svc := NewReconcileService(ReconcileServiceOptions{DB: db, Rooms: updater})

	prior := *property
	updated := *property
	// "Double" renamed to "Twin"; by-name matching treats it as a new
	// template, so no bulk update fires.
	updated.RoomTypes = datatypes.NewJSONSlice([]models.RoomTypeTemplate{
		{Name: "Single", Capacity: 1, Price: 8000, Amenities: []string{}},
		{Name: "Twin", Capacity: 4, Price: 6000, Amenities: []string{}},
	})

	require.NoError(t, svc.PropertyUpdated(context.Background(), &prior, &updated))
	require.Empty(t, updater.calls)
}

func TestPropertyUpdatedPartialFailure(t *testing.T) {
	db := testDB(t)
	property := seedReconcileFixture(t, db)

	updater := &recordingUpdater{db: db, fail: true}
	svc := NewReconcileService(ReconcileServiceOptions{DB: db, Rooms: updater})

	prior := *property
	updated := *property
	updated.RoomTypes = datatypes.NewJSONSlice([]models.RoomTypeTemplate{
		{Name: "Single", Capacity: 1, Price: 8000, Amenities: []string{}},
		{Name: "Double", Capacity: 4, Price: 6000, Amenities: []string{}},
	})

	err := svc.PropertyUpdated(context.Background(), &prior, &updated)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodePartialFailure, apperrors.CodeOf(err))

	// The property row itself survives the failed reconcile.
	var got models.Property
	require.NoError(t, db.First(&got, property.ID).Error)
}

func TestVacantByStatus(t *testing.T) {
	db := testDB(t)
	seedReconcileFixture(t, db)

	svc := NewReconcileService(ReconcileServiceOptions{DB: db, Rooms: &recordingUpdater{db: db}})
	require.NoError(t, svc.RefreshAll(context.Background()))

	counts := svc.VacantByStatus()
	require.Equal(t, 1, counts[constants.RoomStatusVacant])
	require.Equal(t, 1, counts[constants.RoomStatusPartial])
	require.Equal(t, 1, counts[constants.RoomStatusFull])
	require.Equal(t, 0, counts[constants.RoomStatusMaintenance])
}
