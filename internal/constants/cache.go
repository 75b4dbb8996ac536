package constants

import "time"

const (
	UserCachePrefix   = "user_auth" // User by auth provider uid (CacheBuilder adds colon)
	UserCacheExpiry   = 7 * 24 * time.Hour
	CatalogCacheKey   = "activity_catalog"
	CatalogExpiry     = 24 * time.Hour
	AnalysisPrefix    = "weekly_analysis"      // Weekly analysis by user and day
	AnalysisKeysIndex = "weekly_analysis_keys" // Set of analysis keys per user
	AnalysisExpiry    = time.Hour
)
