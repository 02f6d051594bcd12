package formatter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/service"
)

func TestFormatImportResult_TruncatesErrors(t *testing.T) {
	res := &service.ImportResult{SuccessCount: 3, ErrorCount: 12}
	for i := 0; i < 12; i++ {
		res.Errors = append(res.Errors, service.RowError{Row: i + 2, Message: fmt.Sprintf("error %d", i)})
	}

	got := stripANSI(FormatImportResult(res))

	assert.Contains(t, got, "✔ 3 imported")
	assert.Contains(t, got, "✖ 12 failed")
	assert.Contains(t, got, "Row 2: error 0")
	assert.Contains(t, got, "Row 11: error 9")
	assert.NotContains(t, got, "Row 12:")
	assert.Contains(t, got, "… and 2 more")
}

func TestFormatImportResult_NoRows(t *testing.T) {
	got := stripANSI(FormatImportResult(&service.ImportResult{}))
	assert.Contains(t, got, "No rows found.")
}

func TestFormatCoffeeDetail(t *testing.T) {
	roast := "light"
	d := &domain.CoffeeDetail{
		Coffee:      domain.Coffee{ID: "0123456789", Name: "Kenia AA", Slug: "kenia-aa", RoastLevel: &roast, RegularPrice: dec("14.9")},
		Regions:     []domain.Region{{Country: "Kenia", RegionName: "Nyeri"}},
		FlavorNotes: []domain.FlavorNote{{Name: "Blackcurrant"}},
	}

	got := stripANSI(FormatCoffeeDetail(d))

	assert.Contains(t, got, "KENIA AA")
	assert.Contains(t, got, "01234567")
	assert.Contains(t, got, "14.90 EUR")
	assert.Contains(t, got, "Nyeri, Kenia")
	assert.Contains(t, got, "Blackcurrant")
	assert.True(t, strings.Contains(got, "Brewing") && strings.Contains(got, "--"))
}

func TestFormatChatResponse(t *testing.T) {
	got := stripANSI(FormatChatResponse(&service.ChatResponse{
		Answer:          "Fruchtig oder schokoladig?",
		AnswerOptions:   []string{"Fruchtig", "Schokoladig"},
		Recommendations: []service.ChatRecommendation{{Name: "Kenia AA", Slug: "kenia-aa", Reason: "Beerig"}},
	}))

	assert.Contains(t, got, "1. Fruchtig")
	assert.Contains(t, got, "2. Schokoladig")
	assert.Contains(t, got, "RECOMMENDED")
	assert.Contains(t, got, "Kenia AA (kenia-aa)")
	assert.Contains(t, got, "Beerig")
}

func TestFormatGeneratedContent(t *testing.T) {
	got := stripANSI(FormatGeneratedContent(&service.GeneratedContent{
		Description:      "Saftig und klar.",
		FlavorCategories: []string{"Berry", "Citrus Fruit"},
	}))

	assert.Contains(t, got, "DESCRIPTION\n───────────\nSaftig und klar.\n")
	assert.Contains(t, got, "FLAVOR CATEGORIES")
	assert.Contains(t, got, "Berry, Citrus Fruit")
	assert.NotContains(t, got, "SHORT DESCRIPTION")

	assert.Equal(t, "The draft came back empty.\n", stripANSI(FormatGeneratedContent(&service.GeneratedContent{})))
}
