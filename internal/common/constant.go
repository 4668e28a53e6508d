package common

// Durable storage keys used in the metadata table.
const (
	// AuthTokenKey holds the single process-wide session credential.
	AuthTokenKey = "auth_token"

	// MealPlanKey holds the serialized weekly meal plan.
	MealPlanKey = "meal_plan"
)

// DefaultPageSize is the number of recipes per page when callers pass zero.
const DefaultPageSize = 6

// TokenSecretKey holds the generated HS256 secret when none is configured.
const TokenSecretKey = "token_secret"
