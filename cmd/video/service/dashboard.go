package service

import (
	"context"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
)

type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// ChannelStats 频道统计: videos, views, subscribers, likes, tweets
func (s *DashboardService) ChannelStats(ctx context.Context, ownerID string) (*model.ChannelStats, error) {
	return s.store.ChannelStats(ctx, ownerID)
}

func (s *DashboardService) ChannelVideos(ctx context.Context, ownerID string, param database.PageParam) (*database.Page[model.ChannelVideo], error) {
	return s.store.ChannelVideos(ctx, ownerID, param)
}
