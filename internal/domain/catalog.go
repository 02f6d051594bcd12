package domain

import "time"

type Region struct {
	ID          string    `json:"id"`
	Country     string    `json:"country"`
	RegionName  string    `json:"region_name"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	EmblemURL   *string   `json:"emblem_url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName renders "Region, Country", or whichever half is set.
func (r *Region) DisplayName() string {
	switch {
	case r.RegionName != "" && r.Country != "":
		return r.RegionName + ", " + r.Country
	default:
		return CoalesceStr(r.RegionName, r.Country)
	}
}

type BrewMethod struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	IconURL   *string   `json:"icon_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoastLevel struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
