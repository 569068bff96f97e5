package game

import "time"

// Game is a persisted catalog record. IGDBID is the external identifier and
// is unique across the store; ID is the local surrogate key.
type Game struct {
	ID            int64      `json:"id"`
	IGDBID        int64      `json:"igdb_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ReleaseDate   *time.Time `json:"release_date"`
	CoverImageURL string     `json:"cover_image_url"`
	UpdatedAt     *time.Time `json:"updated_at"`

	Publishers []Publisher `json:"publishers"`
	Developers []Developer `json:"developers"`
	Genres     []Genre     `json:"genres"`
	Platforms  []Platform  `json:"platforms"`
}

// Publisher and Developer are keyed by IGDB company id; the stored display
// name is whatever the first upsert saw.
type Publisher struct {
	ID            int64  `json:"id"`
	IGDBCompanyID int64  `json:"igdb_company_id"`
	Name          string `json:"name"`
}

type Developer struct {
	ID            int64  `json:"id"`
	IGDBCompanyID int64  `json:"igdb_company_id"`
	Name          string `json:"name"`
}

// Genre and Platform are keyed by name only.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Query filters and orders a stored-game listing.
type Query struct {
	Q      string
	Genre  string
	SortBy string // "title" (default) or "releasedate"
	Limit  int
	Offset int
}
