package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restay/constants"
	"restay/dto"
	apperrors "restay/errors"
	"restay/models"
	"restay/services/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService is the persistence gateway for staff accounts.
type UserService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &UserService{db: opts.DB, rdb: opts.Redis, logger: l}
}

// List returns accounts matching the query with the total before paging.
func (s *UserService) List(ctx context.Context, q dto.ListQuery) ([]models.User, int, error) {
	var all []models.User

	if s.rdb != nil {
		_ = GetFromRedis(ctx, s.rdb, CacheKeyUsers, &all)
	}
	if len(all) == 0 {
		if err := s.db.WithContext(ctx).Order("name ASC").Find(&all).Error; err != nil {
			return nil, 0, apperrors.Classify(err, "failed to list users")
		}
		if s.rdb != nil && len(all) > 0 {
			if err := SetToRedis(ctx, s.rdb, CacheKeyUsers, all, 10*time.Minute); err != nil {
				s.logger.Error("failed to cache user list: %v", err)
			}
		}
	}

	filtered := all
	if q.Name != "" {
		filtered = filtered[:0:0]
		for _, u := range all {
			needle := strings.ToLower(q.Name)
			if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Email), needle) {
				filtered = append(filtered, u)
			}
		}
	}

	total := len(filtered)
	if q.Limit > 0 {
		start := q.Page * q.Limit
		end := start + q.Limit
		if start >= total {
			filtered = []models.User{}
		} else if end > total {
			filtered = filtered[start:]
		} else {
			filtered = filtered[start:end]
		}
	}

	return filtered, total, nil
}

// Get fetches one account by id
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("user %d not found", id))
	}
	return &user, nil
}

// GetByEmail fetches one account by its normalized email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("no account for %s", email))
	}
	return &user, nil
}

// Create persists a new account. The email is unique; a collision surfaces
// as a constraint violation. A supplied password is hashed before storage,
// an empty one leaves the account on the shared default credential.
func (s *UserService) Create(ctx context.Context, user *models.User, password string) error {
	if err := user.ValidateRole(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to hash password", err)
		}
		user.Password = string(hashed)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.Classify(err, fmt.Sprintf("an account with email %s already exists", user.Email))
	}
	s.invalidate(ctx)
	return nil
}

// Update applies a partial account update. Promoting an account to admin
// clears its assignment list; admins have implicit access everywhere.
func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("user %d not found", id))
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.Role = *req.Role
		if err := user.ValidateRole(); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
		}
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.AssignedProperties != nil {
		user.AssignedProperties = datatypes.NewJSONSlice(*req.AssignedProperties)
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "failed to hash password", err)
		}
		user.Password = string(hashed)
	}
	if user.Role == constants.RoleAdmin {
		user.AssignedProperties = datatypes.NewJSONSlice([]string{})
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("failed to update user %d", id))
	}
	s.invalidate(ctx)
	return &user, nil
}

// Delete removes an account by id
func (s *UserService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return apperrors.Classify(result.Error, fmt.Sprintf("failed to delete user %d", id))
	}
	if result.RowsAffected == 0 {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, fmt.Sprintf("user %d not found", id), nil)
	}
	s.invalidate(ctx)
	return nil
}

// AssignProperty adds a property to an account's assignment list by name.
// Assigning a property the account already holds changes nothing.
func (s *UserService) AssignProperty(ctx context.Context, userID uint, propertyName string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("user %d not found", userID))
	}

	if user.HasProperty(propertyName) {
		return &user, nil
	}

	assigned := append([]string(user.AssignedProperties), propertyName)
	user.AssignedProperties = datatypes.NewJSONSlice(assigned)

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("failed to assign property to user %d", userID))
	}
	s.invalidate(ctx)
	return &user, nil
}

// UnassignProperty removes a property from an account's assignment list.
// Removing a property the account does not hold is a no-op.
func (s *UserService) UnassignProperty(ctx context.Context, userID uint, propertyName string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("user %d not found", userID))
	}

	if !user.HasProperty(propertyName) {
		return &user, nil
	}

	remaining := make([]string, 0, len(user.AssignedProperties))
	for _, name := range user.AssignedProperties {
		if name != propertyName {
			remaining = append(remaining, name)
		}
	}
	user.AssignedProperties = datatypes.NewJSONSlice(remaining)

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperrors.Classify(err, fmt.Sprintf("failed to unassign property from user %d", userID))
	}
	s.invalidate(ctx)
	return &user, nil
}

// TouchLastLogin stamps the login time on an account
func (s *UserService) TouchLastLogin(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
	if err != nil {
		return apperrors.Classify(err, fmt.Sprintf("failed to stamp last login for user %d", id))
	}
	return nil
}

func (s *UserService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, CacheKeyUsers); err != nil {
		s.logger.Error("failed to invalidate user cache: %v", err)
	}
}
