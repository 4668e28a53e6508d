package models

import "fmt"

// Preferences is the per-user record of dietary tags and recipe lists.
// Saved and Favorites keep insertion order and never hold duplicates.
type Preferences struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Allergies          []string `json:"allergies"`
	SavedRecipes       []int64  `json:"savedRecipes"`
	FavoriteRecipes    []int64  `json:"favoriteRecipes"`
}

// PreferencesID returns the canonical record id for userID.
func PreferencesID(userID string) string {
	return fmt.Sprintf("pref-%s", userID)
}

// DefaultPreferences returns an empty record for userID.
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		ID:                 PreferencesID(userID),
		UserID:             userID,
		DietaryPreferences: []string{},
		Allergies:          []string{},
		SavedRecipes:       []int64{},
		FavoriteRecipes:    []int64{},
	}
}

// Normalize fills an empty id, replaces nil slices with empty ones and drops
// duplicate entries while keeping the first occurrence.
func (p *Preferences) Normalize() {
	if p.ID == "" {
		p.ID = PreferencesID(p.UserID)
	}
	p.DietaryPreferences = dedup(p.DietaryPreferences)
	p.Allergies = dedup(p.Allergies)
	p.SavedRecipes = dedup(p.SavedRecipes)
	p.FavoriteRecipes = dedup(p.FavoriteRecipes)
}

// IsSaved reports whether id is in the saved list.
func (p *Preferences) IsSaved(id int64) bool { return contains(p.SavedRecipes, id) }

// IsFavorite reports whether id is in the favorites list.
func (p *Preferences) IsFavorite(id int64) bool { return contains(p.FavoriteRecipes, id) }

// AddID appends id to set unless already present. The second result reports
// whether the set changed.
func AddID(set []int64, id int64) ([]int64, bool) {
	if contains(set, id) {
		return set, false
	}
	return append(set, id), true
}

// RemoveID drops id from set. The second result reports whether the set
// changed.
func RemoveID(set []int64, id int64) ([]int64, bool) {
	out := make([]int64, 0, len(set))
	changed := false
	for _, v := range set {
		if v == id {
			changed = true
			continue
		}
		out = append(out, v)
	}
	if !changed {
		return set, false
	}
	return out, true
}

func contains[T comparable](set []T, v T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func dedup[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
