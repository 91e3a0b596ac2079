package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/types"
)

type TrackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tracks []*types.Track) ([]*types.Track, error)
	GetByID(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (*types.Track, error)
	GetByPlaylistIDs(ctx context.Context, tx *gorm.DB, playlistIDs []uuid.UUID) ([]*types.Track, error)
	Delete(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (bool, error)
	DeleteByPlaylistIDs(ctx context.Context, tx *gorm.DB, playlistIDs []uuid.UUID) error
}

type trackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackRepo(db *gorm.DB, baseLog *logger.Logger) TrackRepo {
	repoLog := baseLog.With("repo", "TrackRepo")
	return &trackRepo{db: db, log: repoLog}
}

func (tr *trackRepo) Create(ctx context.Context, tx *gorm.DB, tracks []*types.Track) ([]*types.Track, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tracks) == 0 {
		return []*types.Track{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tracks).Error; err != nil {
		return nil, err
	}

	return tracks, nil
}

func (tr *trackRepo) GetByID(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (*types.Track, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Track
	err := transaction.WithContext(ctx).
		Where("id = ?", trackID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *trackRepo) GetByPlaylistIDs(ctx context.Context, tx *gorm.DB, playlistIDs []uuid.UUID) ([]*types.Track, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Track
	if len(playlistIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("playlist_id IN ?", playlistIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *trackRepo) Delete(ctx context.Context, tx *gorm.DB, trackID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", trackID).
		Delete(&types.Track{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (tr *trackRepo) DeleteByPlaylistIDs(ctx context.Context, tx *gorm.DB, playlistIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(playlistIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("playlist_id IN ?", playlistIDs).
		Delete(&types.Track{}).Error
}
