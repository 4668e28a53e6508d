// Package services contains the application services of the gophrecipes
// client: the session credential slot, per-user preferences, recipe access
// across the bundled catalog and the remote provider, the cached profile
// view, accounts and the weekly meal plan.
//
// Services are safe for concurrent use. Every operation that changes user
// state reads the session credential fresh from storage and fails with
// common.ErrUnauthorized when it is missing or expired.
package services
