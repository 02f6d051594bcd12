package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roastery/internal/service"
)

// FormatChatResponse renders an assistant turn: the answer, the follow-up
// question with numbered options, and any recommendations.
func FormatChatResponse(resp *service.ChatResponse) string {
	var b strings.Builder
	b.WriteString(StyleFg.Render(resp.Answer) + "\n")

	if resp.Question != "" && resp.Question != resp.Answer {
		b.WriteString("\n" + StyleYellow.Render(resp.Question) + "\n")
	}
	for i, opt := range resp.AnswerOptions {
		fmt.Fprintf(&b, "  %s %s\n", StyleBlue.Render(fmt.Sprintf("%d.", i+1)), opt)
	}
	if len(resp.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommended") + "\n")
		for _, r := range resp.Recommendations {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleRoast.Render("☕"), Bold(r.Name), Dim("("+r.Slug+")"))
			if r.Reason != "" {
				b.WriteString("     " + Dim(r.Reason) + "\n")
			}
		}
	}
	if len(resp.Suggestions) > 0 {
		b.WriteString("\n" + Dim("Try: "+strings.Join(resp.Suggestions, " · ")) + "\n")
	}
	return b.String()
}

// FormatGeneratedContent renders the fields a content draft filled.
func FormatGeneratedContent(c *service.GeneratedContent) string {
	var b strings.Builder
	section := func(title, body string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(title) + "\n" + body + "\n")
	}
	if c.ShortDescription != "" {
		section("Short description", c.ShortDescription)
	}
	if c.Description != "" {
		section("Description", c.Description)
	}
	if len(c.FlavorCategories) > 0 {
		section("Flavor categories", strings.Join(c.FlavorCategories, ", "))
	}
	if b.Len() == 0 {
		return Dim("The draft came back empty.") + "\n"
	}
	return b.String()
}
