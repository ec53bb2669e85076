package constants

import "time"

const (
	AuthTokenDuration = 30 * 24 * time.Hour
	AuthCookieName    = "sgch_admin"
	DevAdminSecret    = "0191"
)

const (
	// attempts per second and burst for the admin secret challenge, per client IP
	AdminChallengeRate  = 0.2
	AdminChallengeBurst = 5

	AssistantRate  = 1
	AssistantBurst = 5
)
