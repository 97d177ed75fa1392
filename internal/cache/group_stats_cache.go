package cache

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StatsTTL bounds how stale a leaderboard or progress snapshot may get
// between invalidations.
const StatsTTL = 60 * time.Second

// GroupStatsCache holds JSON snapshots of computed leaderboard and progress
// payloads. A cache hit is returned verbatim; misses and store errors are
// indistinguishable to callers, so an unreachable store degrades to direct
// aggregation.
type GroupStatsCache struct {
	store Store
}

// NewGroupStatsCache creates a new stats cache. A nil store disables caching.
func NewGroupStatsCache(store Store) *GroupStatsCache {
	return &GroupStatsCache{store: store}
}

func leaderboardKey(groupID uint, metric string, subjects []string, page, limit int) string {
	filter := ""
	if len(subjects) > 0 {
		sorted := make([]string, len(subjects))
		copy(sorted, subjects)
		sort.Strings(sorted)
		filter = strings.Join(sorted, "|")
	}
	return fmt.Sprintf("group:%d:leaderboard:%s:%s:p%d:l%d", groupID, metric, filter, page, limit)
}

func leaderboardPattern(groupID uint) string {
	return fmt.Sprintf("group:%d:leaderboard:*", groupID)
}

func progressKey(groupID uint) string {
	return fmt.Sprintf("group:%d:progress", groupID)
}

// GetLeaderboard retrieves a cached leaderboard snapshot
func (gc *GroupStatsCache) GetLeaderboard(groupID uint, metric string, subjects []string, page, limit int) ([]byte, bool) {
	if gc == nil || gc.store == nil {
		return nil, false
	}
	data, err := gc.store.Get(leaderboardKey(groupID, metric, subjects, page, limit))
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// SetLeaderboard caches a leaderboard snapshot
func (gc *GroupStatsCache) SetLeaderboard(groupID uint, metric string, subjects []string, page, limit int, payload []byte) error {
	if gc == nil || gc.store == nil {
		return nil
	}
	return gc.store.Set(leaderboardKey(groupID, metric, subjects, page, limit), payload, StatsTTL)
}

// GetProgress retrieves a cached progress snapshot
func (gc *GroupStatsCache) GetProgress(groupID uint) ([]byte, bool) {
	if gc == nil || gc.store == nil {
		return nil, false
	}
	data, err := gc.store.Get(progressKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// SetProgress caches a progress snapshot
func (gc *GroupStatsCache) SetProgress(groupID uint, payload []byte) error {
	if gc == nil || gc.store == nil {
		return nil
	}
	return gc.store.Set(progressKey(groupID), payload, StatsTTL)
}

// InvalidateGroup evicts every leaderboard variant and the progress snapshot
// for a group. Called after any goal or activity mutation, success or not.
func (gc *GroupStatsCache) InvalidateGroup(groupID uint) error {
	if gc == nil || gc.store == nil {
		return nil
	}
	err := gc.store.DeletePattern(leaderboardPattern(groupID))
	if derr := gc.store.Delete(progressKey(groupID)); derr != nil && err == nil {
		err = derr
	}
	return err
}
