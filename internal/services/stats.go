package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/ankit705yadav/skillCircle/internal/database"
	"github.com/ankit705yadav/skillCircle/internal/models"
	"github.com/ankit705yadav/skillCircle/pkg/errors"
)

const (
	statsCacheKey = "stats:app"
	statsCacheTTL = 60 * time.Second
)

// StatsService aggregates app-wide counters for the public landing page.
// Counts are cached in Redis for a minute; without Redis every call hits
// the database.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) GetAppStats() (*StatsDTO, *errors.AppError) {
	if database.Redis != nil {
		var cached StatsDTO
		if err := database.CacheGet(statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats StatsDTO
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalConnections, s.db.Model(&models.Connection{})},
		{&stats.ActiveConnections, s.db.Model(&models.Connection{}).Where("status = ?", models.ConnectionAccepted)},
		{&stats.TotalPosts, s.db.Model(&models.SkillPost{})},
		{&stats.ActivePosts, s.db.Model(&models.SkillPost{}).Where("archived = ?", false)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, errors.Internal("Failed to compute stats")
		}
	}

	if database.Redis != nil {
		database.CacheSet(statsCacheKey, stats, statsCacheTTL)
	}
	return &stats, nil
}
