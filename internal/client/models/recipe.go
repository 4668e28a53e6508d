// Package models defines client-side data models used by the gophrecipes
// services: bundled and remote recipes, user preferences, accounts and the
// weekly meal plan.
package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Recipe is an entry of the bundled local catalog. Local recipes are fixed
// at build time and never mutated.
type Recipe struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Image        string   `yaml:"image" json:"image"`
	Category     string   `yaml:"category" json:"category"`
	PrepTime     string   `yaml:"prep_time" json:"prepTime"`
	CookTime     string   `yaml:"cook_time" json:"cookTime"`
	TotalTime    string   `yaml:"total_time" json:"totalTime"`
	Servings     int      `yaml:"servings" json:"servings"`
	Calories     int      `yaml:"calories" json:"calories"`
	Ingredients  []string `yaml:"ingredients" json:"ingredients"`
	Instructions []string `yaml:"instructions" json:"instructions"`
	Notes        string   `yaml:"notes" json:"notes"`
	Tags         []string `yaml:"tags" json:"tags"`
}

// HasTag reports whether tag is in the recipe's tag set. Tags are stored in
// lower case; the argument is compared as given.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharesTag reports whether r and other have at least one tag in common.
func (r Recipe) SharesTag(other Recipe) bool {
	for _, t := range other.Tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}

// TotalMinutes parses the leading number of TotalTime ("30 minutes" -> 30).
// Unparseable values yield 0.
func (r Recipe) TotalMinutes() int {
	s := strings.TrimSpace(r.TotalTime)
	end := strings.IndexFunc(s, func(c rune) bool { return !unicode.IsDigit(c) })
	if end == 0 {
		return 0
	}
	if end > 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Category is a browsable grouping of local recipes.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"-" json:"count"`
}
