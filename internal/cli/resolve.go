package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/repository"
)

// resolveCoffee finds a coffee by, in order: exact slug, exact ID, ID prefix.
func resolveCoffee(ctx context.Context, app *App, input string) (*domain.CoffeeDetail, error) {
	if input == "" {
		return nil, errors.New("coffee slug or ID is required")
	}

	d, err := app.Coffees.GetBySlug(ctx, input)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	coffees, err := app.Coffees.List(ctx, domain.CoffeeFilter{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(coffees))
	for i, c := range coffees {
		ids[i] = c.ID
	}
	id, err := matchID("coffee", input, ids)
	if err != nil {
		return nil, err
	}
	return app.Coffees.Get(ctx, id)
}

// resolveRegionID accepts a full region ID or an unambiguous prefix.
func resolveRegionID(ctx context.Context, app *App, input string) (string, error) {
	regions, err := app.Regions.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	return matchID("region", input, ids)
}

// resolveCategoryID accepts a full category ID, an unambiguous prefix, or
// the exact category name.
func resolveCategoryID(ctx context.Context, app *App, input string) (string, error) {
	categories, err := app.Flavors.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(categories))
	for i, c := range categories {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
		ids[i] = c.ID
	}
	return matchID("flavor category", input, ids)
}

func matchID(kind, input string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
