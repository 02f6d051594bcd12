package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/service"
	"github.com/alexanderramin/roastery/internal/testutil"
)

const sampleCSV = "post_title,post_name,regular_price,tax:product_cat\n" +
	"Kenia AA,kenia-aa,\"14,90\",Filter\n" +
	",ohne-name,9,\n"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	log, _ := logtest.NewNullLogger()

	coffees := repository.NewSQLiteCoffeeRepo(database)
	regions := repository.NewSQLiteRegionRepo(database)
	brews := repository.NewSQLiteBrewMethodRepo(database)
	images := service.NewImageService(testutil.NewMemoryStore(), log)
	// One reply serves both the chat and the content draft.
	stub := &testutil.StubLLM{Reply: `{"answer":"Probier den Kenia AA.","answerOptions":["Fruchtig","Schokoladig"],
"description":"Saftig und klar.","flavor_categories":["fruity","Unbekannt"]}`}

	return &App{
		Import:      service.NewImportService(uow, log),
		Coffees:     service.NewCoffeeService(coffees, repository.NewSQLiteProductTaxonomyRepo(database), images, uow, log),
		Regions:     service.NewRegionService(regions),
		BrewMethods: service.NewBrewMethodService(brews),
		RoastLevels: service.NewRoastLevelService(repository.NewSQLiteRoastLevelRepo(database)),
		Flavors:     service.NewFlavorService(repository.NewSQLiteFlavorRepo(database), coffees, uow, log),
		Images:      images,
		Chat:        service.NewChatService(stub, coffees, regions, brews, log),
		Content:     service.NewContentService(stub, coffees, repository.NewSQLiteFlavorRepo(database), log),
		Log:         log,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestImportCmd_Report(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "import", writeCSV(t))
	require.NoError(t, err)

	assert.Contains(t, out, "1 imported")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "Row 3:")
}

func TestImportCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "import", writeCSV(t), "--json")
	require.NoError(t, err)

	var res service.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
}

func TestImportCmd_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "import", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCoffeeCmd_ShowListDelete(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", writeCSV(t))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "coffee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Kenia AA")
	assert.Contains(t, out, "14.90 EUR")

	out, err = executeCmd(t, app, "coffee", "show", "kenia-aa")
	require.NoError(t, err)
	assert.Contains(t, out, "KENIA AA")
	assert.Contains(t, out, "Filter")

	_, err = executeCmd(t, app, "coffee", "delete", "kenia-aa")
	assert.ErrorIs(t, err, errNeedsConfirmation)

	out, err = executeCmd(t, app, "coffee", "delete", "kenia-aa", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted coffee Kenia AA")

	out, err = executeCmd(t, app, "coffee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No coffees found.")
}

func TestCoffeeCmd_ShowByIDPrefix(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", writeCSV(t))
	require.NoError(t, err)
	d, err := app.Coffees.GetBySlug(context.Background(), "kenia-aa")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "coffee", "show", d.ID[:6], "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"slug": "kenia-aa"`)

	_, err = executeCmd(t, app, "coffee", "show", "zzz-unknown")
	assert.ErrorContains(t, err, `coffee not found: "zzz-unknown"`)
}

func TestRegionCmd_AddListDelete(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "region", "add", "--country", "Kenia", "--name", "Nyeri", "--lat=-0.42", "--lng=36.95")
	require.NoError(t, err)
	assert.Contains(t, out, "Created region Nyeri, Kenia")

	out, err = executeCmd(t, app, "region", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nyeri")
	assert.Contains(t, out, "-0.420, 36.950")

	regions, err := app.Regions.List(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)

	out, err = executeCmd(t, app, "region", "delete", regions[0].ID[:8], "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted region Nyeri, Kenia")
}

func TestRegionCmd_AddRequiresFlags(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "region", "add", "--country", "Kenia")
	assert.ErrorContains(t, err, "name")
}

func TestBrewAndRoastCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "brew", "add", "French press")
	require.NoError(t, err)
	assert.Contains(t, out, "Created brew method French press (french-press)")

	_, err = executeCmd(t, app, "brew", "add", "French Press")
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = executeCmd(t, app, "roast", "add", "Dark", "--order", "3")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "roast", "add", "Light", "--order", "1", "--description", "Bright and acidic")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "roast", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Light"), strings.Index(out, "Dark"))
	assert.Contains(t, out, "Bright and acidic")
}

func TestFlavorCmds_TaxonomyAndWheel(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "flavor", "category", "add", "Fruity", "--color", "#DA1D23")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "flavor", "category", "add", "Berry", "--level", "2", "--parent", "fruity")
	require.NoError(t, err)
	assert.Contains(t, out, "Created level 2 category Berry")
	_, err = executeCmd(t, app, "flavor", "note", "add", "Raspberry", "--category", "Berry")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "flavor", "category", "add", "Nutty")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "flavor", "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Berry")
	assert.Contains(t, out, "Fruity")

	out, err = executeCmd(t, app, "wheel", "--highlight", "Raspberry")
	require.NoError(t, err)
	assert.Contains(t, out, "Raspberry")
	assert.Contains(t, out, "Nutty")

	out, err = executeCmd(t, app, "wheel", "--highlight", "raspberry", "--json", "--layout")
	require.NoError(t, err)
	var res service.WheelResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Tree.Children, 2)
	fruity := res.Tree.Children[0]
	assert.Equal(t, "Fruity", fruity.Name)
	require.NotNil(t, fruity.LabelVisible)
	assert.True(t, *fruity.LabelVisible)
	assert.Len(t, res.Arcs, 4)
}

func TestFlavorCmds_DeleteNeedsConfirmation(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "flavor", "category", "add", "Floral")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "flavor", "category", "delete", "Floral")
	assert.ErrorIs(t, err, errNeedsConfirmation)

	out, err := executeCmd(t, app, "flavor", "category", "delete", "Floral", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category Floral")
}

func TestFlavorSeedCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "flavor", "seed")
	require.NoError(t, err)
	assert.Regexp(t, `^Seeded [1-9]\d* categories and [1-9]\d* notes`, out)

	_, err = executeCmd(t, app, "flavor", "seed")
	assert.ErrorIs(t, err, service.ErrConflict)

	again, err := executeCmd(t, app, "flavor", "seed", "--replace")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestFlavorSeedCmd_FromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "wheel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[category]]
name = "Sweet"
color = "#E65832"
notes = ["Honey", "Vanilla"]
`), 0o644))

	out, err := executeCmd(t, app, "flavor", "seed", path)
	require.NoError(t, err)
	assert.Equal(t, "Seeded 1 categories and 2 notes\n", out)
}

func TestChatCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "chat", "Was", "passt", "zu", "Espresso?")
	require.NoError(t, err)
	assert.Contains(t, out, "Probier den Kenia AA.")
	assert.Contains(t, out, "1. Fruchtig")

	out, err = executeCmd(t, app, "chat", "Hallo", "--json")
	require.NoError(t, err)
	var resp service.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"Fruchtig", "Schokoladig"}, resp.AnswerOptions)

	_, err = executeCmd(t, app, "chat", "Hallo", "--mode", "expert")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestChatCmd_NotConfigured(t *testing.T) {
	app := testApp(t)
	app.Chat = nil

	_, err := executeCmd(t, app, "chat", "Hallo")
	assert.EqualError(t, err, "chat is not configured")
}

func TestCoffeeGenerateCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "import", writeCSV(t))
	require.NoError(t, err)
	_, err = executeCmd(t, app, "flavor", "category", "add", "Fruity")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "coffee", "generate", "kenia-aa")
	require.NoError(t, err)
	assert.Contains(t, out, "Saftig und klar.")
	assert.Contains(t, out, "Fruity")
	assert.NotContains(t, out, "Unbekannt")

	out, err = executeCmd(t, app, "coffee", "generate", "kenia-aa", "--field", "flavor_categories", "--json")
	require.NoError(t, err)
	var draft service.GeneratedContent
	require.NoError(t, json.Unmarshal([]byte(out), &draft))
	assert.Equal(t, service.GeneratedContent{FlavorCategories: []string{"Fruity"}}, draft)

	_, err = executeCmd(t, app, "coffee", "generate", "kenia-aa", "--field", "title")
	assert.ErrorIs(t, err, service.ErrValidation)

	app.Content = nil
	_, err = executeCmd(t, app, "coffee", "generate", "kenia-aa")
	assert.EqualError(t, err, "content generation is not configured")
}

func TestServeCmd_NoHandler(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "serve")
	assert.EqualError(t, err, "http api is not configured")
}
