package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateName(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user %s not found", userID)
	}
	return users[0], nil
}

func (us *userService) UpdateName(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error) {
	fullName = normalization.TrimInputString(fullName)
	if fullName == "" {
		return nil, apierr.InvalidInput("full name is required")
	}
	if err := us.userRepo.UpdateByID(ctx, nil, userID, map[string]interface{}{"full_name": fullName}); err != nil {
		return nil, fmt.Errorf("failed to update user name: %w", err)
	}
	return us.GetByID(ctx, userID)
}

func (us *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error) {
	if us.avatarService == nil {
		return nil, apierr.StorageUnavailable(fmt.Errorf("avatar storage is not configured"))
	}
	if len(raw) == 0 {
		return nil, apierr.InvalidInput("avatar image is required")
	}
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var updated *types.User
	txErr := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aErr := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, tx, user, raw); aErr != nil {
			return aErr
		}
		updates := map[string]interface{}{
			"avatar_bucket_key": user.AvatarBucketKey,
			"avatar_url":        user.AvatarURL,
		}
		if uErr := us.userRepo.UpdateByID(ctx, tx, userID, updates); uErr != nil {
			return fmt.Errorf("failed to persist avatar fields: %w", uErr)
		}
		updated = user
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}
