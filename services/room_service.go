package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"restay/dto"
	apperrors "restay/errors"
	"restay/models"
	"restay/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RoomService is the persistence gateway for rooms.
type RoomService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

type RoomServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &RoomService{db: opts.DB, rdb: opts.Redis, logger: l}
}

// List returns rooms, optionally scoped to one property, with the total
// before paging.
func (s *RoomService) List(ctx context.Context, propertyID uint, q dto.ListQuery) ([]models.Room, int, error) {
	var all []models.Room

	if s.rdb != nil && propertyID == 0 {
		_ = GetFromRedis(ctx, s.rdb, CacheKeyRooms, &all)
	}
	if len(all) == 0 {
		query := s.db.WithContext(ctx).Order("property_id ASC, number ASC")
		if propertyID != 0 {
			query = query.Where("property_id = ?", propertyID)
		}
		if err := query.Find(&all).Error; err != nil {
			return nil, 0, apperrors.Classify(err, "failed to list rooms")
		}
		if s.rdb != nil && propertyID == 0 && len(all) > 0 {
			if err := SetToRedis(ctx, s.rdb, CacheKeyRooms, all, 10*time.Minute); err != nil {
				s.logger.Error("failed to cache room list: %v", err)
			}
		}
	}

	filtered := all
	if q.Name != "" {
		filtered = filtered[:0:0]
		for _, r := range all {
			if strings.Contains(strings.ToLower(r.Number), strings.ToLower(q.Name)) {
				filtered = append(filtered, r)
			}
		}
	}

	total := len(filtered)
	if q.Limit > 0 {
		start := q.Page * q.Limit
		end := start + q.Limit
		if start >= total {
			filtered = []models.Room{}
		} else if end > total {
			filtered = filtered[start:]
		} else {
			filtered = filtered[start:end]
		}
	}

	return filtered, total, nil
}

// Get fetches one room by id
func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("room %d not found", id))
	}
	return &room, nil
}

// Create persists a new room. The parent property must exist; a dangling
// property id is a reference violation regardless of what the driver would
// report.
func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	if err := room.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}
	if err := room.ValidateCapacity(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}

	var property models.Property
	if err := s.db.WithContext(ctx).First(&property, room.PropertyID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(
				apperrors.ErrCodeReferenceViolation,
				fmt.Sprintf("property %d does not exist", room.PropertyID),
				err,
			)
		}
		return apperrors.Classify(err, "failed to resolve property")
	}

	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("failed to create room %q", room.Number))
	}
	s.invalidate(ctx)
	return nil
}

// Update saves changed fields of an existing room
func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	var existing models.Room
	if err := s.db.WithContext(ctx).First(&existing, room.ID).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("room %d not found", room.ID))
	}

	if room.Status != "" {
		if err := room.ValidateStatus(); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
		}
	}
	room.CreatedAt = existing.CreatedAt

	if err := s.db.WithContext(ctx).Save(room).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("failed to update room %q", room.Number))
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a room by id
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return apperrors.Classify(result.Error, fmt.Sprintf("failed to delete room %d", id))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, fmt.Sprintf("room %d not found", id), nil)
	}
	s.invalidate(ctx)
	return nil
}

// BulkUpdateCapacity sets the capacity of every room of one type in one
// property with a single statement and returns how many rows changed.
func (s *RoomService) BulkUpdateCapacity(ctx context.Context, propertyID uint, roomTypeName string, capacity int) (int64, error) {
	if capacity < 1 {
		return 0, apperrors.NewAppError(apperrors.ErrCodeValidation, "capacity must be at least 1", nil)
	}

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Room{}).
			Where("property_id = ? AND type = ?", propertyID, roomTypeName).
			Update("capacity", capacity)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperrors.Classify(err, fmt.Sprintf("failed to update capacity for %q rooms", roomTypeName))
	}

	s.logger.Info("bulk capacity update: property=%d type=%s capacity=%d affected=%d", propertyID, roomTypeName, capacity, affected)
	s.invalidate(ctx)
	return affected, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, CacheKeyRooms, CacheKeyProperties); err != nil {
		s.logger.Error("failed to invalidate room cache: %v", err)
	}
}
