package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/llm"
	"github.com/alexanderramin/roastery/internal/repository"
)

// ContentTarget names the one catalog field a draft should fill.
type ContentTarget string

const (
	TargetShortDescription ContentTarget = "short_description"
	TargetDescription      ContentTarget = "description"
	TargetFlavorCategories ContentTarget = "flavor_categories"
)

// GenerateContentInput describes the coffee to write about. When CoffeeID
// is set, blank fields are taken from the stored coffee.
type GenerateContentInput struct {
	CoffeeID         string        `json:"coffee_id"`
	Name             string        `json:"name"`
	Country          string        `json:"country"`
	RoastLevel       string        `json:"roast_level"`
	ProcessingMethod string        `json:"processing_method"`
	Varietal         string        `json:"varietal"`
	ShortDescription string        `json:"short_description"`
	Description      string        `json:"description"`
	TargetField      ContentTarget `json:"target_field" validate:"omitempty,oneof=short_description description flavor_categories"`
}

// GeneratedContent is a draft. FlavorCategories only ever holds names of
// existing flavor categories.
type GeneratedContent struct {
	ShortDescription string   `json:"short_description,omitempty"`
	Description      string   `json:"description,omitempty"`
	FlavorCategories []string `json:"flavor_categories"`
}

const contentSystemPrompt = "Du bist ein Rösterei-Assistent. Schreibe prägnant und werblich. Antworte nur mit JSON."

type contentService struct {
	client   llm.LLMClient
	coffees  repository.CoffeeRepo
	flavors  repository.FlavorRepo
	log      logrus.FieldLogger
	observer UseCaseObserver
}

// NewContentService builds the copy generator for the back office. A nil
// client makes Generate return llm.ErrDisabled.
func NewContentService(
	client llm.LLMClient,
	coffees repository.CoffeeRepo,
	flavors repository.FlavorRepo,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) ContentService {
	return &contentService{
		client:   client,
		coffees:  coffees,
		flavors:  flavors,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *contentService) Generate(ctx context.Context, in GenerateContentInput) (out *GeneratedContent, err error) {
	fields := map[string]any{"target": in.TargetField, "coffee_id": in.CoffeeID}
	defer observe(ctx, s.observer, "content-generate", fields)(&err)

	if err = validateInput(in); err != nil {
		return nil, err
	}
	if in.CoffeeID != "" {
		c, err := s.coffees.GetByID(ctx, in.CoffeeID)
		if err != nil {
			return nil, err
		}
		in.fillFrom(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: Name fehlt", ErrValidation)
	}
	if s.client == nil {
		return nil, llm.ErrDisabled
	}

	cats, err := s.flavors.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing flavor categories: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskContentDraft,
		SystemPrompt: contentSystemPrompt,
		UserPrompt:   contentPrompt(in, cats),
		JSON:         true,
	})
	if err != nil {
		return nil, err
	}

	draft, err := llm.ExtractJSON[GeneratedContent](resp.Text, nil)
	if err != nil {
		s.log.WithField("raw", resp.Text).Warn("content draft is not JSON")
		return nil, fmt.Errorf("reading content draft: %w", err)
	}

	known := knownCategories(draft.FlavorCategories, cats)
	fields["dropped_categories"] = len(draft.FlavorCategories) - len(known)
	out = &GeneratedContent{
		ShortDescription: strings.TrimSpace(draft.ShortDescription),
		Description:      strings.TrimSpace(draft.Description),
		FlavorCategories: known,
	}
	out.keepOnly(in.TargetField)
	return out, nil
}

func (in *GenerateContentInput) fillFrom(c *domain.Coffee) {
	fill := func(dst *string, src *string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = domain.StrValue(src)
		}
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = c.Name
	}
	fill(&in.Country, c.Country)
	fill(&in.RoastLevel, c.RoastLevel)
	fill(&in.ProcessingMethod, c.ProcessingMethod)
	fill(&in.Varietal, c.Varietal)
	fill(&in.ShortDescription, c.ShortDescription)
	fill(&in.Description, c.Description)
}

func (g *GeneratedContent) keepOnly(target ContentTarget) {
	switch target {
	case TargetShortDescription:
		g.Description, g.FlavorCategories = "", []string{}
	case TargetDescription:
		g.ShortDescription, g.FlavorCategories = "", []string{}
	case TargetFlavorCategories:
		g.ShortDescription, g.Description = "", ""
	}
}

func contentPrompt(in GenerateContentInput, cats []domain.FlavorCategory) string {
	var facts []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			facts = append(facts, label+": "+v)
		}
	}
	add("Name", in.Name)
	add("Herkunft", in.Country)
	add("Röstgrad", in.RoastLevel)
	add("Aufbereitung", in.ProcessingMethod)
	add("Varietät", in.Varietal)
	add("Kurzbeschreibung", in.ShortDescription)
	add("Beschreibung", in.Description)

	info := strings.Join(facts, " | ")
	if info == "" {
		info = "keine"
	}
	field := "Fülle alle Felder."
	if in.TargetField != "" {
		field = fmt.Sprintf("Fülle NUR das Feld %q. Alle anderen Felder leer lassen.", in.TargetField)
	}

	return strings.Join([]string{
		"Erstelle Inhalte für genau ein Textfeld.",
		"Sprache: Deutsch.",
		`Antworte nur mit JSON: "short_description" (<=200 Zeichen), "description" (3-5 Sätze), "flavor_categories" (Array der Namen).`,
		"Verwende ausschließlich die bereitgestellte Aromakategorien-Liste.",
		field,
		"Kaffeeinfos: " + info,
		"Verfügbare Aromakategorien: " + categoryHints(cats),
	}, "\n")
}

// categoryHints lists every category with its ancestors, e.g.
// "Raspberry (Fruity > Berry)".
func categoryHints(cats []domain.FlavorCategory) string {
	byID := make(map[string]domain.FlavorCategory, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	parentOf := func(c domain.FlavorCategory) (domain.FlavorCategory, bool) {
		if c.ParentID == nil {
			return domain.FlavorCategory{}, false
		}
		p, ok := byID[*c.ParentID]
		return p, ok
	}

	hints := make([]string, 0, len(cats))
	for _, c := range cats {
		var path []string
		if p, ok := parentOf(c); ok {
			if gp, ok := parentOf(p); ok {
				path = append(path, gp.Name)
			}
			path = append(path, p.Name)
		}
		if len(path) == 0 {
			hints = append(hints, c.Name)
			continue
		}
		hints = append(hints, fmt.Sprintf("%s (%s)", c.Name, strings.Join(path, " > ")))
	}
	return strings.Join(hints, ", ")
}

// knownCategories keeps the names that match a category, case-insensitively,
// spelled as stored and without duplicates.
func knownCategories(names []string, cats []domain.FlavorCategory) []string {
	canonical := make(map[string]string, len(cats))
	for _, c := range cats {
		canonical[strings.ToLower(c.Name)] = c.Name
	}
	out := []string{}
	seen := map[string]bool{}
	for _, n := range names {
		name, ok := canonical[strings.ToLower(strings.TrimSpace(n))]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
