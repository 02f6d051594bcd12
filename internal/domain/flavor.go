package domain

import "time"

// FlavorCategory is a structural node of the flavor taxonomy. ParentID is
// nil for top-level categories.
type FlavorCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	ParentID  *string   `json:"parent_id"`
	ColorHex  *string   `json:"color_hex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *FlavorCategory) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// FlavorNote is the finest-grained taste descriptor, attached to a category.
type FlavorNote struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CategoryID  *string   `json:"category_id"`
	ColorHex    *string   `json:"color_hex"`
	Description *string   `json:"description"`
	IconURL     *string   `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
