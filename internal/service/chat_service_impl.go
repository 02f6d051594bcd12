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

type ChatMode string

const (
	ChatModeEasy     ChatMode = "easy"
	ChatModeAdvanced ChatMode = "advanced"
)

const (
	chatHistoryLimit   = 10
	chatCoffeeLimit    = 40
	chatDescriptionMax = 180
)

type ChatMessage struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content"`
}

type ChatPreferences struct {
	RegionID     string `json:"regionId"`
	RoastLevel   string `json:"roastLevel"`
	BrewMethodID string `json:"brewMethodId"`
}

type ChatRequest struct {
	Message     string           `json:"message"`
	History     []ChatMessage    `json:"history" validate:"dive"`
	Preferences *ChatPreferences `json:"preferences"`
	Locale      string           `json:"locale"`
	ChatMode    ChatMode         `json:"chatMode" validate:"omitempty,oneof=easy advanced"`
}

type ChatRecommendation struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

type ChatResponse struct {
	Answer          string               `json:"answer"`
	Question        string               `json:"question,omitempty"`
	AnswerOptions   []string             `json:"answerOptions"`
	Suggestions     []string             `json:"suggestions"`
	Recommendations []ChatRecommendation `json:"recommendations"`
	IsFinal         bool                 `json:"isFinal"`
}

type chatService struct {
	client   llm.LLMClient
	coffees  repository.CoffeeRepo
	regions  repository.RegionRepo
	brews    repository.BrewMethodRepo
	log      logrus.FieldLogger
	observer UseCaseObserver
}

// NewChatService builds the coffee assistant. A nil client makes Chat
// return llm.ErrDisabled.
func NewChatService(
	client llm.LLMClient,
	coffees repository.CoffeeRepo,
	regions repository.RegionRepo,
	brews repository.BrewMethodRepo,
	log logrus.FieldLogger,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		client:   client,
		coffees:  coffees,
		regions:  regions,
		brews:    brews,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) Chat(ctx context.Context, req ChatRequest) (resp *ChatResponse, err error) {
	mode := req.ChatMode
	if mode == "" {
		mode = ChatModeEasy
	}
	locale := domain.ParseLocale(req.Locale)
	fields := map[string]any{"mode": mode, "locale": locale, "history": len(req.History)}
	defer observe(ctx, s.observer, "chat", fields)(&err)

	if strings.TrimSpace(req.Message) == "" && len(req.History) == 0 && req.Preferences == nil {
		return nil, fmt.Errorf("%w: Eingabe fehlt", ErrValidation)
	}
	if err = validateInput(req); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, llm.ErrDisabled
	}

	catalog, err := s.catalogContext(ctx, req.Preferences, locale)
	if err != nil {
		return nil, err
	}
	fields["context_chars"] = len(catalog)

	task := llm.TaskChatGuided
	system := guidedPrompts[locale]
	if mode == ChatModeAdvanced {
		task = llm.TaskChatExpert
		system = expertPrompts[locale]
	}

	genReq := llm.GenerateRequest{
		Task:         task,
		SystemPrompt: system + "\n\n" + catalog,
		Messages:     chatHistory(req.History),
		JSON:         true,
	}
	switch {
	case strings.TrimSpace(req.Message) != "":
		genReq.UserPrompt = req.Message
	case len(req.History) == 0:
		genReq.UserPrompt = startMessages[mode][locale]
	}

	out, err := s.client.Generate(ctx, genReq)
	if err != nil {
		return nil, err
	}
	return parseChatReply(out.Text, s.log), nil
}

func chatHistory(history []ChatMessage) []llm.Message {
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	return msgs
}

// parseChatReply accepts the model's JSON reply; anything unparseable is
// passed through as a plain answer.
func parseChatReply(raw string, log logrus.FieldLogger) *ChatResponse {
	reply, err := llm.ExtractJSON[ChatResponse](raw, nil)
	if err != nil {
		log.WithError(err).Warn("chat reply is not JSON, returning raw text")
		reply = ChatResponse{}
	}
	if strings.TrimSpace(reply.Answer) == "" {
		reply.Answer = raw
	}
	if reply.AnswerOptions == nil {
		reply.AnswerOptions = []string{}
	}
	if reply.Suggestions == nil {
		reply.Suggestions = []string{}
	}
	if reply.Recommendations == nil {
		reply.Recommendations = []ChatRecommendation{}
	}
	return &reply
}

func (s *chatService) catalogContext(ctx context.Context, prefs *ChatPreferences, locale domain.Locale) (string, error) {
	l := labels[locale]

	coffees, err := s.coffees.List(ctx, domain.CoffeeFilter{})
	if err != nil {
		return "", fmt.Errorf("listing coffees: %w", err)
	}
	if len(coffees) > chatCoffeeLimit {
		coffees = coffees[:chatCoffeeLimit]
	}

	var b strings.Builder
	if pref := s.preferenceText(ctx, prefs, l); pref != "" {
		fmt.Fprintf(&b, "%s: %s\n\n", l.context, pref)
	}
	fmt.Fprintf(&b, "%s:\n", l.data)
	for _, c := range coffees {
		line, err := s.summarize(ctx, c, l)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *chatService) summarize(ctx context.Context, c *domain.Coffee, l contextLabels) (string, error) {
	regions, err := s.coffees.ListRegions(ctx, c.ID)
	if err != nil {
		return "", err
	}
	notes, err := s.coffees.ListFlavorNotes(ctx, c.ID)
	if err != nil {
		return "", err
	}
	brews, err := s.coffees.ListBrewMethods(ctx, c.ID)
	if err != nil {
		return "", err
	}

	region := domain.StrValue(c.Country)
	if len(regions) > 0 {
		region = domain.CoalesceStr(regions[0].RegionName, region)
	}
	noteNames := make([]string, len(notes))
	for i, n := range notes {
		noteNames[i] = n.Name
	}
	brewNames := make([]string, len(brews))
	for i, b := range brews {
		brewNames[i] = b.Name
	}
	desc := []rune(domain.CoalesceStr(domain.StrValue(c.ShortDescription), domain.StrValue(c.Description)))
	if len(desc) > chatDescriptionMax {
		desc = desc[:chatDescriptionMax]
	}

	return strings.Join([]string{
		l.name + ": " + c.Name,
		"Slug: " + c.Slug,
		l.region + ": " + region,
		l.roast + ": " + domain.StrValue(c.RoastLevel),
		l.brew + ": " + strings.Join(brewNames, ", "),
		l.notes + ": " + strings.Join(noteNames, ", "),
		l.process + ": " + domain.StrValue(c.ProcessingMethod),
		l.varietal + ": " + domain.StrValue(c.Varietal),
		l.description + ": " + string(desc),
	}, " | "), nil
}

// preferenceText resolves preference ids to names where possible.
func (s *chatService) preferenceText(ctx context.Context, prefs *ChatPreferences, l contextLabels) string {
	if prefs == nil {
		return ""
	}
	var parts []string
	if prefs.RegionID != "" {
		name := prefs.RegionID
		if s.regions != nil {
			if r, err := s.regions.GetByID(ctx, prefs.RegionID); err == nil {
				name = r.DisplayName()
			}
		}
		parts = append(parts, l.prefRegion+": "+name)
	}
	if prefs.RoastLevel != "" {
		parts = append(parts, l.prefRoast+": "+prefs.RoastLevel)
	}
	if prefs.BrewMethodID != "" {
		name := prefs.BrewMethodID
		if s.brews != nil {
			if b, err := s.brews.GetByID(ctx, prefs.BrewMethodID); err == nil {
				name = b.Name
			}
		}
		parts = append(parts, l.prefBrew+": "+name)
	}
	return strings.Join(parts, ", ")
}
