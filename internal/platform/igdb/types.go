package igdb

import (
	"strings"
	"time"
)

// Game is a single normalized search result from the IGDB /games endpoint.
// The json-tagged fields mirror the raw IGDB response; the remaining fields
// are derived by the client after decoding.
type Game struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Summary           string            `json:"summary"`
	FirstReleaseDate  *int64            `json:"first_release_date"`
	Cover             *Cover            `json:"cover"`
	UpdatedAt         int64             `json:"updated_at"`
	Platforms         []PlatformRef     `json:"platforms"`
	Genres            []GenreRef        `json:"genres"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies"`

	// Derived fields, populated by postProcess.
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Publishers  []Company  `json:"publishers"`
	Developers  []Company  `json:"developers"`
}

type Cover struct {
	URL string `json:"url"`
}

type PlatformRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type InvolvedCompany struct {
	Company   *Company `json:"company"`
	Developer bool     `json:"developer"`
	Publisher bool     `json:"publisher"`
}

// postProcess derives the computed fields from the raw IGDB payload:
// secure full-size cover URL, calendar release date in the local zone,
// and the publisher/developer partition of involved companies.
func (g *Game) postProcess() {
	if g.Cover != nil {
		g.CoverURL = ConvertCoverURL(g.Cover.URL)
	}

	if g.FirstReleaseDate != nil {
		d := time.Unix(*g.FirstReleaseDate, 0)
		g.ReleaseDate = &d
	}

	// Always non-nil so an upsert rebuilds these associations even when the
	// game has no involved companies. Genres and Platforms stay nil when the
	// payload omits them.
	g.Publishers = make([]Company, 0)
	g.Developers = make([]Company, 0)
	for _, involved := range g.InvolvedCompanies {
		if involved.Company == nil {
			continue
		}
		if involved.Publisher {
			g.Publishers = append(g.Publishers, *involved.Company)
		}
		if involved.Developer {
			g.Developers = append(g.Developers, *involved.Company)
		}
	}
}

// UpdatedTime returns the record's last-updated timestamp as calendar time.
func (g *Game) UpdatedTime() time.Time {
	return time.Unix(g.UpdatedAt, 0)
}

// ConvertCoverURL rewrites a protocol-relative IGDB thumbnail URL to a
// secure absolute URL pointing at the larger cover rendition.
func ConvertCoverURL(original string) string {
	if original == "" {
		return ""
	}
	u := original
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return strings.ReplaceAll(u, "t_thumb", "t_cover_big")
}
