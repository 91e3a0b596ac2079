package services

import (
	"context"
	"errors"
	"strings"

	"github.com/vibetune/backend/internal/clients/youtube"
	"github.com/vibetune/backend/internal/logger"
)

var ErrNoVideo = errors.New("no video found")

// VideoService resolves a track to a playable video id.
type VideoService interface {
	FindVideoID(ctx context.Context, title, artist string) (string, error)
}

type videoService struct {
	log     *logger.Logger
	youtube *youtube.Client
}

func NewVideoService(log *logger.Logger, yt *youtube.Client) VideoService {
	serviceLog := log.With("service", "VideoService")
	return &videoService{log: serviceLog, youtube: yt}
}

func (vs *videoService) FindVideoID(ctx context.Context, title, artist string) (string, error) {
	query := strings.TrimSpace(title + " " + artist)
	if query == "" {
		return "", ErrNoVideo
	}
	id, err := vs.youtube.SearchVideoID(ctx, query)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNoVideo
	}
	return id, nil
}
