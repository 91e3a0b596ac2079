package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/repos"
	"github.com/vibetune/backend/internal/requestdata"
	"github.com/vibetune/backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context, offset, limit int) ([]*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No authenticated user in context")
	}
	return us.GetByID(ctx, rd.UserID)
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (us *userService) List(ctx context.Context, offset, limit int) ([]*types.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	users, err := us.userRepo.List(ctx, nil, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("Failed to list users: %w", err)
	}
	return users, nil
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err := us.userRepo.Delete(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("Failed to delete user: %w", err)
		}
		if !deleted {
			return ErrNotFound
		}
		return nil
	})
}
