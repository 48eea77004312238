package config

const (
	// DefaultDailyReward is the points granted per daily claim
	DefaultDailyReward = 100

	// DefaultOracleModel is the chat-completions model used for resolution
	DefaultOracleModel = "gpt-4o"

	// DefaultOracleTimeoutSeconds bounds a single oracle call
	DefaultOracleTimeoutSeconds = 30

	// DefaultSweepSchedule runs the lifecycle sweep every minute
	DefaultSweepSchedule = "* * * * *"
)
