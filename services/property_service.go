package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"restay/constants"
	"restay/dto"
	apperrors "restay/errors"
	"restay/models"
	"restay/services/logger"
	"restay/services/notification"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PropertyService is the persistence gateway for properties. All store
// failures leave through the typed taxonomy so callers switch on error
// codes, never on driver message text.
type PropertyService struct {
	db       *gorm.DB
	rdb      *redis.Client
	logger   logger.Logger
	notifier notification.Service

	// submitMu guards property creation. A second submission arriving while
	// one is in flight is dropped, not queued.
	submitMu sync.Mutex
}

type PropertyServiceOptions struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Logger   logger.Logger
	Notifier notification.Service
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	n := opts.Notifier
	if n == nil {
		n = notification.NewLogService()
	}
	return &PropertyService{
		db:       opts.DB,
		rdb:      opts.Redis,
		logger:   l,
		notifier: n,
	}
}

// List returns properties matching the query with the total before paging.
// Limit 0 means no paging.
func (s *PropertyService) List(ctx context.Context, q dto.ListQuery) ([]models.Property, int, error) {
	var all []models.Property

	if s.rdb != nil {
		_ = GetFromRedis(ctx, s.rdb, CacheKeyProperties, &all)
	}
	if len(all) == 0 {
		if err := s.db.WithContext(ctx).Order("name ASC").Find(&all).Error; err != nil {
			return nil, 0, apperrors.Classify(err, "failed to list properties")
		}
		if s.rdb != nil && len(all) > 0 {
			if err := SetToRedis(ctx, s.rdb, CacheKeyProperties, all, 10*time.Minute); err != nil {
				s.logger.Error("failed to cache property list: %v", err)
			}
		}
	}

	filtered := all
	if q.Name != "" {
		filtered = filtered[:0:0]
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
				filtered = append(filtered, p)
			}
		}
	}

	total := len(filtered)
	if q.Limit > 0 {
		start := q.Page * q.Limit
		end := start + q.Limit
		if start >= total {
			filtered = []models.Property{}
		} else if end > total {
			filtered = filtered[start:]
		} else {
			filtered = filtered[start:end]
		}
	}

	return filtered, total, nil
}

// Get fetches one property by id
func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).Preload("Rooms").First(&property, id).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("property %d not found", id))
	}
	return &property, nil
}

// Create persists a new property and, when floor allocations are supplied,
// generates its initial rooms. Room generation failing after the property
// row landed is a partial failure: the property stays and the caller is
// warned rather than rolled back.
func (s *PropertyService) Create(ctx context.Context, property *models.Property, allocations []dto.FloorAllocation) error {
	if !s.submitMu.TryLock() {
		return apperrors.NewAppError(apperrors.ErrCodeSubmitInFlight, "a property submission is already in flight", nil)
	}
	defer s.submitMu.Unlock()

	if err := property.ValidateType(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}
	if err := property.ValidateCounts(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}

	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("failed to create property %q", property.Name))
	}
	s.invalidate(ctx)

	if len(allocations) == 0 {
		return nil
	}

	created, err := s.generateRooms(ctx, property, allocations)
	if err != nil {
		s.logger.Error("room generation for property %d failed: %v", property.ID, err)
		if nerr := s.notifier.Notify(
			"Warning",
			fmt.Sprintf("%s was created but some rooms could not be generated. You can add rooms manually from the Room Management page.", property.Name),
			notification.SeverityWarning,
		); nerr != nil {
			s.logger.Error("failed to send notification: %v", nerr)
		}
		return apperrors.NewAppError(
			apperrors.ErrCodePartialFailure,
			fmt.Sprintf("%s was created but failed to create rooms", property.Name),
			err,
		)
	}

	s.logger.Info("created property %d with %d generated rooms", property.ID, created)
	s.invalidate(ctx)
	return nil
}

// generateRooms expands the floor allocations into room rows. Capacity and
// rent come from the matching room-type template; numbering is floor-major
// (101, 102, 201, ...). All rows land in one transaction.
func (s *PropertyService) generateRooms(ctx context.Context, property *models.Property, allocations []dto.FloorAllocation) (int, error) {
	var rooms []models.Room
	for floor := 1; floor <= property.Floors; floor++ {
		seq := 1
		for _, alloc := range allocations {
			capacity := 1
			rent := 0.0
			if tpl := property.RoomTypeByName(alloc.RoomType); tpl != nil {
				capacity = tpl.Capacity
				rent = tpl.Price
			}
			for i := 0; i < alloc.RoomsPerFloor; i++ {
				rooms = append(rooms, models.Room{
					PropertyID: property.ID,
					Number:     fmt.Sprintf("%d%02d", floor, seq),
					Type:       alloc.RoomType,
					Capacity:   capacity,
					Rent:       rent,
					Status:     constants.RoomStatusVacant,
				})
				seq++
			}
		}
	}
	if len(rooms) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rooms).Error
	})
	if err != nil {
		return 0, err
	}
	return len(rooms), nil
}

// Update saves changed fields of an existing property
func (s *PropertyService) Update(ctx context.Context, property *models.Property) error {
	var existing models.Property
	if err := s.db.WithContext(ctx).First(&existing, property.ID).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("property %d not found", property.ID))
	}

	if property.Type != "" {
		if err := property.ValidateType(); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
		}
	}

	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("failed to update property %q", property.Name))
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a property and every room that references it. The cascade
// is explicit: both deletes run in one transaction so no orphaned rooms
// survive a partial failure.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, id).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(apperrors.ErrCodeNotFound, fmt.Sprintf("property %d not found", id), err)
		}
		return apperrors.Classify(err, fmt.Sprintf("failed to delete property %d", id))
	}
	s.invalidate(ctx)
	return nil
}

// Managers lists the active accounts that can be assigned as a property
// manager.
func (s *PropertyService) Managers(ctx context.Context) ([]models.User, error) {
	var managers []models.User
	err := s.db.WithContext(ctx).
		Where("role = ? AND status = ?", constants.RoleManager, constants.UserStatusActive).
		Order("name ASC").
		Find(&managers).Error
	if err != nil {
		return nil, apperrors.Classify(err, "failed to list managers")
	}
	return managers, nil
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, CacheKeyProperties, CacheKeyRooms); err != nil {
		s.logger.Error("failed to invalidate property cache: %v", err)
	}
}
