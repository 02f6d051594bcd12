package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/roastery/internal/llm"
	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/testutil"
)

type chatFixture struct {
	svc     ChatService
	stub    *testutil.StubLLM
	coffees *repository.SQLiteCoffeeRepo
	regions *repository.SQLiteRegionRepo
	hook    *logtest.Hook
}

func newChatFixture(t *testing.T, reply string) chatFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	log, hook := logtest.NewNullLogger()
	stub := &testutil.StubLLM{Reply: reply}
	coffees := repository.NewSQLiteCoffeeRepo(database)
	regions := repository.NewSQLiteRegionRepo(database)
	return chatFixture{
		svc:     NewChatService(stub, coffees, regions, repository.NewSQLiteBrewMethodRepo(database), log),
		stub:    stub,
		coffees: coffees,
		regions: regions,
		hook:    hook,
	}
}

const guidedReply = `{"answer":"Magst du es fruchtig?","question":"Fruchtig oder schokoladig?",
"answerOptions":["Fruchtig","Schokoladig"],"isFinal":false}`

func TestChatService_GuidedReply(t *testing.T) {
	f := newChatFixture(t, guidedReply)
	ctx := context.Background()

	huila := testutil.NewTestRegion("Kolumbien", "Huila")
	require.NoError(t, f.regions.Create(ctx, huila))
	coffee := testutil.NewTestCoffee("Kolumbien Huila", testutil.WithRoastLevel("light"))
	require.NoError(t, f.coffees.Create(ctx, coffee))
	require.NoError(t, f.coffees.SetRegions(ctx, coffee.ID, []string{huila.ID}))

	resp, err := f.svc.Chat(ctx, ChatRequest{Message: "Ich suche einen Filterkaffee"})
	require.NoError(t, err)

	assert.Equal(t, "Magst du es fruchtig?", resp.Answer)
	assert.Equal(t, []string{"Fruchtig", "Schokoladig"}, resp.AnswerOptions)
	assert.NotNil(t, resp.Suggestions)
	assert.NotNil(t, resp.Recommendations)
	assert.False(t, resp.IsFinal)

	req := f.stub.LastRequest()
	assert.Equal(t, llm.TaskChatGuided, req.Task)
	assert.True(t, req.JSON)
	assert.Equal(t, "Ich suche einen Filterkaffee", req.UserPrompt)
	assert.Contains(t, req.SystemPrompt, "Kaffeedaten:")
	assert.Contains(t, req.SystemPrompt, "Name: Kolumbien Huila | Slug: kolumbien-huila | Region: Huila | Röstung: light")
}

func TestChatService_AdvancedEnglishStart(t *testing.T) {
	f := newChatFixture(t, `{"answer":"Hello!"}`)

	resp, err := f.svc.Chat(context.Background(), ChatRequest{
		ChatMode:    ChatModeAdvanced,
		Locale:      "en",
		Preferences: &ChatPreferences{RoastLevel: "dark", BrewMethodID: "unknown-id"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Answer)

	req := f.stub.LastRequest()
	assert.Equal(t, llm.TaskChatExpert, req.Task)
	assert.Equal(t, startMessages[ChatModeAdvanced]["en"], req.UserPrompt)
	assert.Contains(t, req.SystemPrompt, "Context: Roast: dark, Brewing: unknown-id")
}

func TestChatService_PreferredRegionResolved(t *testing.T) {
	f := newChatFixture(t, `{"answer":"ok"}`)
	ctx := context.Background()

	nyeri := testutil.NewTestRegion("Kenia", "Nyeri")
	require.NoError(t, f.regions.Create(ctx, nyeri))

	_, err := f.svc.Chat(ctx, ChatRequest{Message: "hi", Preferences: &ChatPreferences{RegionID: nyeri.ID}})
	require.NoError(t, err)
	assert.Contains(t, f.stub.LastRequest().SystemPrompt, "Bevorzugte Region: Nyeri, Kenia")
}

func TestChatService_HistoryTrimmed(t *testing.T) {
	f := newChatFixture(t, `{"answer":"ok"}`)

	var history []ChatMessage
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, ChatMessage{Role: role, Content: fmt.Sprintf("m%d", i)})
	}

	_, err := f.svc.Chat(context.Background(), ChatRequest{History: history})
	require.NoError(t, err)

	req := f.stub.LastRequest()
	require.Len(t, req.Messages, chatHistoryLimit)
	assert.Equal(t, "m4", req.Messages[0].Content)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, llm.RoleAssistant, req.Messages[9].Role)
	assert.Empty(t, req.UserPrompt)
}

func TestChatService_RawFallback(t *testing.T) {
	f := newChatFixture(t, "Probier den Kenia AA.")

	resp, err := f.svc.Chat(context.Background(), ChatRequest{Message: "Empfehlung?"})
	require.NoError(t, err)

	assert.Equal(t, "Probier den Kenia AA.", resp.Answer)
	assert.Empty(t, resp.AnswerOptions)
	assert.NotNil(t, resp.AnswerOptions)
	require.NotNil(t, f.hook.LastEntry())
	assert.Equal(t, "chat reply is not JSON, returning raw text", f.hook.LastEntry().Message)
}

func TestChatService_Errors(t *testing.T) {
	ctx := context.Background()

	f := newChatFixture(t, "")
	_, err := f.svc.Chat(ctx, ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Eingabe fehlt")

	_, err = f.svc.Chat(ctx, ChatRequest{Message: "hi", ChatMode: "expert"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Chat(ctx, ChatRequest{History: []ChatMessage{{Role: "system", Content: "x"}}})
	assert.ErrorIs(t, err, ErrValidation)

	f.stub.Err = llm.ErrUnavailable
	_, err = f.svc.Chat(ctx, ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, llm.ErrUnavailable)

	log, _ := logtest.NewNullLogger()
	disabled := NewChatService(nil, nil, nil, nil, log)
	_, err = disabled.Chat(ctx, ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, llm.ErrDisabled)
}

func TestChatService_DescriptionTruncated(t *testing.T) {
	f := newChatFixture(t, `{"answer":"ok"}`)
	ctx := context.Background()

	long := strings.Repeat("ä", 300)
	require.NoError(t, f.coffees.Create(ctx, testutil.NewTestCoffee("Kenia AA", testutil.WithDescription(long))))

	_, err := f.svc.Chat(ctx, ChatRequest{Message: "hi"})
	require.NoError(t, err)
	prompt := f.stub.LastRequest().SystemPrompt
	assert.Contains(t, prompt, "Beschreibung: "+strings.Repeat("ä", chatDescriptionMax))
	assert.NotContains(t, prompt, strings.Repeat("ä", chatDescriptionMax+1))
}
