package services

import (
	"context"
	"fmt"
	"sync"

	"restay/constants"
	"restay/dto"
	apperrors "restay/errors"
	"restay/models"
	"restay/services/logger"
	"restay/services/notification"

	"gorm.io/gorm"
)

// CapacityUpdater applies a bulk capacity change to the room store.
// *RoomService satisfies it.
type CapacityUpdater interface {
	BulkUpdateCapacity(ctx context.Context, propertyID uint, roomTypeName string, capacity int) (int64, error)
}

// ReconcileService keeps the derived read model consistent with the store.
// It holds an in-memory snapshot of every property, recomputes occupancy
// aggregates from full listings, and pushes room-level capacity changes when
// a property's room-type templates are edited.
type ReconcileService struct {
	db       *gorm.DB
	rooms    CapacityUpdater
	logger   logger.Logger
	notifier notification.Service

	mu         sync.RWMutex
	properties []models.Property
	users      []models.User
}

type ReconcileServiceOptions struct {
	DB       *gorm.DB
	Rooms    CapacityUpdater
	Logger   logger.Logger
	Notifier notification.Service
}

func NewReconcileService(opts ReconcileServiceOptions) *ReconcileService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.NewLogService()
	}
	return &ReconcileService{
		db:       opts.DB,
		rooms:    opts.Rooms,
		logger:   l,
		notifier: n,
	}
}

// Snapshot returns the current read-model copy of the properties.
func (s *ReconcileService) Snapshot() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Users returns the current read-model copy of the accounts.
func (s *ReconcileService) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// RefreshAll reloads every property with its rooms, recomputes the occupancy
// aggregates from the full listing, and writes changed aggregates back to
// the property rows. Incremental bookkeeping is deliberately avoided; a full
// reload cannot drift.
func (s *ReconcileService) RefreshAll(ctx context.Context) error {
	var properties []models.Property
	if err := s.db.WithContext(ctx).Preload("Rooms").Order("name ASC").Find(&properties).Error; err != nil {
		return apperrors.Classify(err, "failed to reload properties")
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return apperrors.Classify(err, "failed to reload users")
	}

	for i := range properties {
		p := &properties[i]

		totalCapacity := 0
		actualOccupancy := 0
		monthlyRent := 0.0
		for _, room := range p.Rooms {
			totalCapacity += room.Capacity
			actualOccupancy += len(room.Occupants)
			if len(room.Occupants) > 0 {
				monthlyRent += room.Rent
			}
		}

		rate := 0.0
		if totalCapacity > 0 {
			rate = float64(actualOccupancy) / float64(totalCapacity) * 100
		}

		if p.TotalCapacity == totalCapacity && p.ActualOccupancy == actualOccupancy &&
			p.OccupancyRate == rate && p.MonthlyRent == monthlyRent {
			continue
		}

		p.TotalCapacity = totalCapacity
		p.ActualOccupancy = actualOccupancy
		p.OccupancyRate = rate
		p.MonthlyRent = monthlyRent

		err := s.db.WithContext(ctx).Model(&models.Property{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"total_capacity":   totalCapacity,
				"actual_occupancy": actualOccupancy,
				"occupancy_rate":   rate,
				"monthly_rent":     monthlyRent,
			}).Error
		if err != nil {
			return apperrors.Classify(err, fmt.Sprintf("failed to write aggregates for property %d", p.ID))
		}
	}

	s.mu.Lock()
	s.properties = properties
	s.users = users
	s.mu.Unlock()

	s.logger.Debug("read model refreshed: %d properties, %d users", len(properties), len(users))
	return nil
}

// PropertyUpdated reconciles room rows after a property edit. Templates are
// matched by name between the prior and updated snapshots; each template
// whose capacity changed triggers exactly one bulk room update. Renamed
// templates do not match and their rooms keep the old capacity.
func (s *ReconcileService) PropertyUpdated(ctx context.Context, prior, updated *models.Property) error {
	changed := 0
	var failures []string

	for _, tpl := range updated.RoomTypes {
		priorTpl := prior.RoomTypeByName(tpl.Name)
		if priorTpl == nil || priorTpl.Capacity == tpl.Capacity {
			continue
		}

		affected, err := s.rooms.BulkUpdateCapacity(ctx, updated.ID, tpl.Name, tpl.Capacity)
		if err != nil {
			s.logger.Error("bulk capacity update failed for %s/%s: %v", updated.Name, tpl.Name, err)
			failures = append(failures, tpl.Name)
			continue
		}
		changed++
		if affected > 0 {
			if nerr := s.notifier.Notify(
				"Rooms Updated",
				fmt.Sprintf("%d %s room(s) in %s updated to capacity %d.", affected, tpl.Name, updated.Name, tpl.Capacity),
				notification.SeverityInfo,
			); nerr != nil {
				s.logger.Error("failed to send notification: %v", nerr)
			}
		}
	}

	if err := s.RefreshAll(ctx); err != nil {
		s.logger.Error("read model refresh after property update failed: %v", err)
	}

	if len(failures) > 0 {
		if nerr := s.notifier.Notify(
			"Warning",
			fmt.Sprintf("%s was updated but some room capacities could not be changed: %v.", updated.Name, failures),
			notification.SeverityWarning,
		); nerr != nil {
			s.logger.Error("failed to send notification: %v", nerr)
		}
		return apperrors.NewAppError(
			apperrors.ErrCodePartialFailure,
			fmt.Sprintf("%s was updated but %d room type(s) could not be reconciled", updated.Name, len(failures)),
			nil,
		)
	}

	if changed > 0 {
		s.logger.Info("reconciled %d room type(s) for property %d", changed, updated.ID)
	}
	return nil
}

// PropertyDeleted drops the property from the read model and refreshes.
func (s *ReconcileService) PropertyDeleted(ctx context.Context, id uint) error {
	return s.RefreshAll(ctx)
}

// OccupancySummaries derives the per-property occupancy view from the
// current snapshot.
func (s *ReconcileService) OccupancySummaries() []dto.OccupancySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]dto.OccupancySummary, 0, len(s.properties))
	for _, p := range s.properties {
		summaries = append(summaries, dto.OccupancySummary{
			PropertyID:      p.ID,
			PropertyName:    p.Name,
			TotalCapacity:   p.TotalCapacity,
			ActualOccupancy: p.ActualOccupancy,
			OccupancyRate:   p.OccupancyRate,
			RoomCount:       len(p.Rooms),
		})
	}
	return summaries
}

// VacantByStatus counts rooms per status across the snapshot.
func (s *ReconcileService) VacantByStatus() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{
		constants.RoomStatusVacant:      0,
		constants.RoomStatusPartial:     0,
		constants.RoomStatusFull:        0,
		constants.RoomStatusMaintenance: 0,
	}
	for _, p := range s.properties {
		for _, r := range p.Rooms {
			counts[r.Status]++
		}
	}
	return counts
}
