package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibetune/backend/internal/logger"
	"github.com/vibetune/backend/internal/types"
)

type PlaylistRepo interface {
	Create(ctx context.Context, tx *gorm.DB, playlists []*types.Playlist) ([]*types.Playlist, error)
	GetByID(ctx context.Context, tx *gorm.DB, playlistID uuid.UUID) (*types.Playlist, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Playlist, error)
	GetFavoritesByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Playlist, error)
	Update(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error)
	Delete(ctx context.Context, tx *gorm.DB, playlistID uuid.UUID) (bool, error)
	AddFavorite(ctx context.Context, tx *gorm.DB, playlist *types.Playlist, user *types.User) error
	RemoveFavorite(ctx context.Context, tx *gorm.DB, playlist *types.Playlist, user *types.User) error
}

type playlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaylistRepo(db *gorm.DB, baseLog *logger.Logger) PlaylistRepo {
	repoLog := baseLog.With("repo", "PlaylistRepo")
	return &playlistRepo{db: db, log: repoLog}
}

func (pr *playlistRepo) Create(ctx context.Context, tx *gorm.DB, playlists []*types.Playlist) ([]*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(playlists) == 0 {
		return []*types.Playlist{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&playlists).Error; err != nil {
		return nil, err
	}

	return playlists, nil
}

func (pr *playlistRepo) GetByID(ctx context.Context, tx *gorm.DB, playlistID uuid.UUID) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Playlist
	err := transaction.WithContext(ctx).
		Preload("Tracks").
		Where("id = ?", playlistID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *playlistRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Playlist
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Tracks").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *playlistRepo) GetFavoritesByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Playlist
	if err := transaction.WithContext(ctx).
		Preload("Tracks").
		Joins("JOIN user_favorites ON user_favorites.playlist_id = playlist.id").
		Where("user_favorites.user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *playlistRepo) Update(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Save(playlist).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

func (pr *playlistRepo) Delete(ctx context.Context, tx *gorm.DB, playlistID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", playlistID).
		Delete(&types.Playlist{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (pr *playlistRepo) AddFavorite(ctx context.Context, tx *gorm.DB, playlist *types.Playlist, user *types.User) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(playlist).
		Association("FavoritedBy").
		Append(user)
}

func (pr *playlistRepo) RemoveFavorite(ctx context.Context, tx *gorm.DB, playlist *types.Playlist, user *types.User) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(playlist).
		Association("FavoritedBy").
		Delete(user)
}
