package leaderboard

import "time"

const (
	// PageSize caps how many ranked users one request returns.
	PageSize = 10

	// CacheTTL bounds how stale a served ranking can be. Invalidation
	// signals tighten this, never loosen it.
	CacheTTL = 60 * time.Second

	cacheKey = "top"

	LogMsgCacheDropped = "Leaderboard cache dropped by invalidation signal"
	LogMsgRefreshed    = "Leaderboard refreshed from database"
)
