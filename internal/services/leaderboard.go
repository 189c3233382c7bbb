package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// leaderboardFlight collapses concurrent identical leaderboard reads into one query
var leaderboardFlight singleflight.Group

// LeaderboardEntry is one ranked user
type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           string  `json:"userId"`
	Name             string  `json:"name"`
	TotalKilometers  float64 `json:"totalKilometers"`
	EventsCompleted  int     `json:"eventsCompleted"`
	ExperiencePoints int     `json:"experiencePoints"`
	CurrentLevel     int     `json:"currentLevel"`
}

// Leaderboard ranks users by total kilometers, ties broken by experience
func Leaderboard(ctx context.Context, db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("%p/%d", db, limit)
	v, err, _ := leaderboardFlight.Do(key, func() (any, error) {
		return loadLeaderboard(context.WithoutCancel(ctx), db, limit)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]LeaderboardEntry)
	out := make([]LeaderboardEntry, len(shared))
	copy(out, shared)
	return out, nil
}

func loadLeaderboard(ctx context.Context, db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	var out []LeaderboardEntry
	err := db.WithContext(ctx).
		Clauses(hints.CommentBefore("select", "leaderboard")).
		Table("user_progress").
		Select("user_progress.user_id, users.name, user_progress.total_kilometers, " +
			"user_progress.events_completed, user_progress.experience_points, user_progress.current_level").
		Joins("JOIN users ON users.id = user_progress.user_id").
		Order("user_progress.total_kilometers DESC, user_progress.experience_points DESC, user_progress.user_id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
