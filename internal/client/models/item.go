package models

import "strconv"

// Source tags which variant a RecipeItem carries.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// RecipeItem is a tagged union over the two recipe shapes. Exactly one of
// Local and Remote is set, matching Source.
type RecipeItem struct {
	Source Source
	Local  *Recipe
	Remote *ExternalRecipe
}

func LocalItem(r Recipe) RecipeItem {
	return RecipeItem{Source: SourceLocal, Local: &r}
}

func RemoteItem(r ExternalRecipe) RecipeItem {
	return RecipeItem{Source: SourceRemote, Remote: &r}
}

// RecipeSummary is the projection shared by both recipe shapes.
type RecipeSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Source         Source `json:"source"`
}

func (i RecipeItem) Summary() RecipeSummary {
	switch i.Source {
	case SourceLocal:
		if i.Local == nil {
			return RecipeSummary{}
		}
		return RecipeSummary{
			ID:             i.Local.ID,
			Title:          i.Local.Title,
			Image:          i.Local.Image,
			ReadyInMinutes: i.Local.TotalMinutes(),
			Source:         SourceLocal,
		}
	case SourceRemote:
		if i.Remote == nil {
			return RecipeSummary{}
		}
		return RecipeSummary{
			ID:             strconv.FormatInt(i.Remote.ID, 10),
			Title:          i.Remote.Title,
			Image:          i.Remote.Image,
			ReadyInMinutes: i.Remote.ReadyInMinutes,
			Source:         SourceRemote,
		}
	default:
		return RecipeSummary{}
	}
}
