// Package dataset models the raw nflverse tables served to the explorer and
// consumed by the enrichment join: a registry of known datasets, an ordered
// column schema with inferred types, and loosely typed rows.
package dataset

import (
	"context"
	"errors"
	"fmt"
)

// Dataset identifiers.
const (
	Seasonal = "seasonal"
	Rosters  = "rosters"
	Teams    = "teams"
)

// Info describes a dataset in the registry.
type Info struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	SupportsYears bool   `json:"supports_years"`
	MinYear       *int   `json:"min_year"`
}

func year(y int) *int { return &y }

var registry = []Info{
	{
		ID:            Seasonal,
		Name:          "Seasonal Player Stats",
		Description:   "Cumulative regular season passing, rushing and receiving stats per player",
		SupportsYears: true,
		MinYear:       year(1999),
	},
	{
		ID:            Rosters,
		Name:          "Seasonal Rosters",
		Description:   "Player identity, position and team for each season",
		SupportsYears: true,
		MinYear:       year(1920),
	},
	{
		ID:            Teams,
		Name:          "Team Descriptions",
		Description:   "Team names, conferences, divisions, colors and logos",
		SupportsYears: false,
	},
}

// All returns the registry in display order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registry entry for id.
func Lookup(id string) (Info, bool) {
	for _, info := range registry {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Source fetches raw tables. years is ignored for datasets that do not
// support years; an empty years slice means the source's default.
type Source interface {
	Fetch(ctx context.Context, datasetID string, years []int) (*Table, error)
}

// ErrNoData is returned by sources that hold nothing for a requested season.
var ErrNoData = errors.New("no data loaded")

// UnknownDatasetError is returned by sources asked for an unregistered id.
type UnknownDatasetError struct {
	ID string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset %q", e.ID)
}
