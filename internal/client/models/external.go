package models

// ExternalRecipe is a recipe fetched from the third-party provider. Field
// names follow the provider's JSON so responses decode directly.
type ExternalRecipe struct {
	ID                   int64            `json:"id"`
	Title                string           `json:"title"`
	Image                string           `json:"image"`
	SourceURL            string           `json:"sourceUrl,omitempty"`
	Summary              string           `json:"summary,omitempty"`
	Instructions         string           `json:"instructions,omitempty"`
	ReadyInMinutes       int              `json:"readyInMinutes"`
	Servings             int              `json:"servings"`
	Diets                []string         `json:"diets"`
	ExtendedIngredients  []Ingredient     `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionSet `json:"analyzedInstructions"`
	Nutrition            *Nutrition       `json:"nutrition,omitempty"`
}

type Ingredient struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// InstructionSet is one named group of numbered steps.
type InstructionSet struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

type Step struct {
	Number      int              `json:"number"`
	Step        string           `json:"step"`
	Ingredients []StepIngredient `json:"ingredients"`
}

type StepIngredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

type Nutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds,omitempty"`
}

// RemoteSearchQuery parameterizes a provider search.
type RemoteSearchQuery struct {
	Query        string
	Diet         string
	Intolerances []string
	Page         int
	PageSize     int
}

// RemoteSearchResult is one page of provider search hits.
type RemoteSearchResult struct {
	Results      []ExternalRecipe `json:"results"`
	Offset       int              `json:"offset"`
	Number       int              `json:"number"`
	TotalResults int              `json:"totalResults"`
}
