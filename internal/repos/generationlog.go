package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/types"
)

type GenerationLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.GenerationLog) ([]*types.GenerationLog, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.GenerationLog, error)
}

type generationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationLogRepo(db *gorm.DB, baseLog *logger.Logger) GenerationLogRepo {
	repoLog := baseLog.With("repo", "GenerationLogRepo")
	return &generationLogRepo{db: db, log: repoLog}
}

func (glr *generationLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.GenerationLog) ([]*types.GenerationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	if len(logs) == 0 {
		return []*types.GenerationLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func (glr *generationLogRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.GenerationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	var results []*types.GenerationLog
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
