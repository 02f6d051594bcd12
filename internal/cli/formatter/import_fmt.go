package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roastery/internal/service"
)

// ImportErrorLimit is how many row errors the report lists.
const ImportErrorLimit = 10

// FormatImportResult renders the import summary and the first row errors.
func FormatImportResult(res *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(Header("Import"))
	b.WriteString("\n")

	total := res.SuccessCount + res.ErrorCount
	if total == 0 {
		b.WriteString(Dim("No rows found.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %d imported   %s %d failed\n",
		StyleGreen.Render("✔"), res.SuccessCount, StyleRed.Render("✖"), res.ErrorCount)
	b.WriteString(RenderProgress(float64(res.SuccessCount)/float64(total), 30) + "\n")

	if len(res.Errors) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	shown := res.Errors[:min(len(res.Errors), ImportErrorLimit)]
	for _, e := range shown {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render(fmt.Sprintf("Row %d:", e.Row)), e.Message)
	}
	if rest := len(res.Errors) - len(shown); rest > 0 {
		b.WriteString(Dim(fmt.Sprintf("  … and %d more", rest)) + "\n")
	}
	return b.String()
}
