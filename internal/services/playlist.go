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

// TrackInput is one track as submitted by a client when creating or
// extending a playlist.
type TrackInput struct {
	Name     string `json:"name" binding:"required"`
	Artist   string `json:"artist" binding:"required"`
	URL      string `json:"url"`
	ImageURL string `json:"image"`
}

type PlaylistService interface {
	Create(ctx context.Context, name, description string, tracks []TrackInput) (*types.Playlist, error)
	GetByID(ctx context.Context, playlistID uuid.UUID) (*types.Playlist, error)
	GetMine(ctx context.Context) ([]*types.Playlist, error)
	GetMyFavorites(ctx context.Context) ([]*types.Playlist, error)
	Update(ctx context.Context, playlistID uuid.UUID, name, description *string) (*types.Playlist, error)
	Delete(ctx context.Context, playlistID uuid.UUID) error
	Favorite(ctx context.Context, playlistID uuid.UUID) error
	Unfavorite(ctx context.Context, playlistID uuid.UUID) error
	AddTrack(ctx context.Context, playlistID uuid.UUID, track TrackInput) (*types.Track, error)
	RemoveTrack(ctx context.Context, playlistID, trackID uuid.UUID) error
}

type playlistService struct {
	db           *gorm.DB
	log          *logger.Logger
	playlistRepo repos.PlaylistRepo
	trackRepo    repos.TrackRepo
	userRepo     repos.UserRepo
}

func NewPlaylistService(db *gorm.DB, log *logger.Logger, playlistRepo repos.PlaylistRepo, trackRepo repos.TrackRepo, userRepo repos.UserRepo) PlaylistService {
	serviceLog := log.With("service", "PlaylistService")
	return &playlistService{
		db:           db,
		log:          serviceLog,
		playlistRepo: playlistRepo,
		trackRepo:    trackRepo,
		userRepo:     userRepo,
	}
}

func currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("No authenticated user in context")
	}
	return rd.UserID, nil
}

func (ps *playlistService) Create(ctx context.Context, name, description string, tracks []TrackInput) (*types.Playlist, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("A playlist name is required")
	}

	playlist := &types.Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		UserID:      userID,
	}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ps.playlistRepo.Create(ctx, tx, []*types.Playlist{playlist}); cErr != nil {
			return fmt.Errorf("Failed to create playlist: %w", cErr)
		}
		if len(tracks) == 0 {
			return nil
		}
		newTracks := make([]*types.Track, 0, len(tracks))
		for _, t := range tracks {
			newTracks = append(newTracks, &types.Track{
				ID:         uuid.New(),
				Name:       t.Name,
				Artist:     t.Artist,
				URL:        t.URL,
				ImageURL:   t.ImageURL,
				PlaylistID: playlist.ID,
			})
		}
		created, tErr := ps.trackRepo.Create(ctx, tx, newTracks)
		if tErr != nil {
			return fmt.Errorf("Failed to create playlist tracks: %w", tErr)
		}
		playlist.Tracks = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (ps *playlistService) GetByID(ctx context.Context, playlistID uuid.UUID) (*types.Playlist, error) {
	playlist, err := ps.playlistRepo.GetByID(ctx, nil, playlistID)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch playlist: %w", err)
	}
	if playlist == nil {
		return nil, ErrNotFound
	}
	return playlist, nil
}

func (ps *playlistService) GetMine(ctx context.Context) ([]*types.Playlist, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	playlists, err := ps.playlistRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch playlists: %w", err)
	}
	return playlists, nil
}

func (ps *playlistService) GetMyFavorites(ctx context.Context) ([]*types.Playlist, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	playlists, err := ps.playlistRepo.GetFavoritesByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch favorite playlists: %w", err)
	}
	return playlists, nil
}

// ownedPlaylist loads a playlist and checks that the calling user owns it.
func (ps *playlistService) ownedPlaylist(ctx context.Context, tx *gorm.DB, playlistID uuid.UUID) (*types.Playlist, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	playlist, err := ps.playlistRepo.GetByID(ctx, tx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch playlist: %w", err)
	}
	if playlist == nil {
		return nil, ErrNotFound
	}
	if playlist.UserID != userID {
		return nil, ErrForbidden
	}
	return playlist, nil
}

func (ps *playlistService) Update(ctx context.Context, playlistID uuid.UUID, name, description *string) (*types.Playlist, error) {
	var updated *types.Playlist
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := ps.ownedPlaylist(ctx, tx, playlistID)
		if err != nil {
			return err
		}
		if name != nil && *name != "" {
			playlist.Name = *name
		}
		if description != nil {
			playlist.Description = *description
		}
		updated, err = ps.playlistRepo.Update(ctx, tx, playlist)
		if err != nil {
			return fmt.Errorf("Failed to update playlist: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ps *playlistService) Delete(ctx context.Context, playlistID uuid.UUID) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.ownedPlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		if err := ps.trackRepo.DeleteByPlaylistIDs(ctx, tx, []uuid.UUID{playlistID}); err != nil {
			return fmt.Errorf("Failed to delete playlist tracks: %w", err)
		}
		deleted, err := ps.playlistRepo.Delete(ctx, tx, playlistID)
		if err != nil {
			return fmt.Errorf("Failed to delete playlist: %w", err)
		}
		if !deleted {
			return ErrNotFound
		}
		return nil
	})
}

func (ps *playlistService) Favorite(ctx context.Context, playlistID uuid.UUID) error {
	return ps.setFavorite(ctx, playlistID, true)
}

func (ps *playlistService) Unfavorite(ctx context.Context, playlistID uuid.UUID) error {
	return ps.setFavorite(ctx, playlistID, false)
}

func (ps *playlistService) setFavorite(ctx context.Context, playlistID uuid.UUID, favorite bool) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := ps.playlistRepo.GetByID(ctx, tx, playlistID)
		if err != nil {
			return fmt.Errorf("Failed to fetch playlist: %w", err)
		}
		if playlist == nil {
			return ErrNotFound
		}
		users, err := ps.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil || len(users) == 0 {
			return fmt.Errorf("Failed to load user for favorite: %w", err)
		}
		if favorite {
			if fErr := ps.playlistRepo.AddFavorite(ctx, tx, playlist, users[0]); fErr != nil {
				return fmt.Errorf("Failed to favorite playlist: %w", fErr)
			}
			return nil
		}
		if fErr := ps.playlistRepo.RemoveFavorite(ctx, tx, playlist, users[0]); fErr != nil {
			return fmt.Errorf("Failed to unfavorite playlist: %w", fErr)
		}
		return nil
	})
}

func (ps *playlistService) AddTrack(ctx context.Context, playlistID uuid.UUID, track TrackInput) (*types.Track, error) {
	var created *types.Track
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.ownedPlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		newTrack := &types.Track{
			ID:         uuid.New(),
			Name:       track.Name,
			Artist:     track.Artist,
			URL:        track.URL,
			ImageURL:   track.ImageURL,
			PlaylistID: playlistID,
		}
		tracks, tErr := ps.trackRepo.Create(ctx, tx, []*types.Track{newTrack})
		if tErr != nil {
			return fmt.Errorf("Failed to add track: %w", tErr)
		}
		created = tracks[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (ps *playlistService) RemoveTrack(ctx context.Context, playlistID, trackID uuid.UUID) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.ownedPlaylist(ctx, tx, playlistID); err != nil {
			return err
		}
		track, err := ps.trackRepo.GetByID(ctx, tx, trackID)
		if err != nil {
			return fmt.Errorf("Failed to fetch track: %w", err)
		}
		if track == nil || track.PlaylistID != playlistID {
			return ErrNotFound
		}
		deleted, err := ps.trackRepo.Delete(ctx, tx, trackID)
		if err != nil {
			return fmt.Errorf("Failed to remove track: %w", err)
		}
		if !deleted {
			return ErrNotFound
		}
		return nil
	})
}
