package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/roastery/internal/domain"
)

func FormatRegionList(regions []*domain.Region) string {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		coords := Dim("--")
		if r.Latitude != nil && r.Longitude != nil {
			coords = fmt.Sprintf("%.3f, %.3f", *r.Latitude, *r.Longitude)
		}
		rows = append(rows, []string{TruncID(r.ID), Bold(r.RegionName), r.Country, coords})
	}
	return RenderTable([]string{"ID", "REGION", "COUNTRY", "COORDINATES"}, rows)
}

func FormatBrewMethodList(methods []*domain.BrewMethod) string {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{TruncID(m.ID), Bold(m.Name), Dim(m.Slug)})
	}
	return RenderTable([]string{"ID", "NAME", "SLUG"}, rows)
}

func FormatRoastLevelList(levels []*domain.RoastLevel) string {
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{strconv.Itoa(l.SortOrder), StyleRoast.Render(l.Name), Dim(l.Slug), orDash(l.Description)})
	}
	return RenderTable([]string{"#", "NAME", "SLUG", "DESCRIPTION"}, rows)
}

// FormatCategoryList renders categories with their parent's name.
func FormatCategoryList(categories []domain.FlavorCategory) string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		parent := Dim("--")
		if c.ParentID != nil {
			parent = domain.CoalesceStr(names[*c.ParentID], *c.ParentID)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Swatch(domain.StrValue(c.ColorHex)) + " " + Bold(c.Name),
			strconv.Itoa(c.Level),
			parent,
		})
	}
	return RenderTable([]string{"ID", "CATEGORY", "LEVEL", "PARENT"}, rows)
}
