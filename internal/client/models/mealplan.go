package models

import "strings"

// Days of the plan, Monday first.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Meals of a single day.
var Meals = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// MealPlan maps day -> meal -> recipe. Missing entries are empty slots.
type MealPlan struct {
	Slots map[string]map[string]RecipeSummary `json:"slots"`
}

func NewMealPlan() *MealPlan {
	return &MealPlan{Slots: map[string]map[string]RecipeSummary{}}
}

// Get returns the recipe in a slot, if any.
func (m *MealPlan) Get(day, meal string) (RecipeSummary, bool) {
	if m == nil || m.Slots == nil {
		return RecipeSummary{}, false
	}
	r, ok := m.Slots[day][meal]
	return r, ok
}

// Set places r in a slot. Day and meal must already be canonical.
func (m *MealPlan) Set(day, meal string, r RecipeSummary) {
	if m.Slots == nil {
		m.Slots = map[string]map[string]RecipeSummary{}
	}
	if m.Slots[day] == nil {
		m.Slots[day] = map[string]RecipeSummary{}
	}
	m.Slots[day][meal] = r
}

// Clear empties a slot.
func (m *MealPlan) Clear(day, meal string) {
	if m.Slots == nil || m.Slots[day] == nil {
		return
	}
	delete(m.Slots[day], meal)
	if len(m.Slots[day]) == 0 {
		delete(m.Slots, day)
	}
}

// CanonicalDay matches s case-insensitively against Days.
func CanonicalDay(s string) (string, bool) { return canonical(Days, s) }

// CanonicalMeal matches s case-insensitively against Meals.
func CanonicalMeal(s string) (string, bool) { return canonical(Meals, s) }

func canonical(list []string, s string) (string, bool) {
	for _, v := range list {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}
