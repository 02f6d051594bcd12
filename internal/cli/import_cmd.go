package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/roastery/internal/cli/formatter"
	"github.com/alexanderramin/roastery/internal/service"
)

func newImportCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import coffees from a WooCommerce CSV or XLSX export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return errors.New("import is not configured")
			}
			out := cmd.OutOrStdout()

			var (
				res *service.ImportResult
				err error
			)
			if app.interactive() && !jsonOut {
				res, err = runImportWithProgress(cmd.Context(), app.Import, args[0], out)
			} else {
				res, err = app.Import.ImportFile(cmd.Context(), args[0], nil)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(out, res)
			}
			fmt.Fprint(out, formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	return cmd
}

// errImportInterrupted is returned when the progress view is closed before
// the import finished. Rows written until then stay committed.
var errImportInterrupted = errors.New("import interrupted")

type importRowMsg service.RowOutcome

type importDoneMsg struct {
	res *service.ImportResult
	err error
}

// importModel shows a spinner and a progress bar while rows are written.
type importModel struct {
	file     string
	spinner  spinner.Model
	progress progress.Model

	processed   int
	failed      int
	total       int
	lastSlug    string
	interrupted bool

	res *service.ImportResult
	err error
}

func newImportModel(file string) importModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorRoast)
	return importModel{
		file:     file,
		spinner:  s,
		progress: progress.New(progress.WithGradient(string(formatter.ColorRoast), string(formatter.ColorYellow)), progress.WithWidth(40)),
	}
}

func (m importModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m importModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importRowMsg:
		m.processed++
		m.total = msg.Total
		if msg.Slug != "" {
			m.lastSlug = msg.Slug
		}
		if msg.Err != nil {
			m.failed++
		}
		return m, nil

	case importDoneMsg:
		m.res, m.err = msg.res, msg.err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(60, msg.Width-16))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m importModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.processed) / float64(m.total)
}

func (m importModel) View() string {
	if m.res != nil || m.err != nil || m.interrupted {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.spinner.View() + " " + formatter.Bold("Importing "+m.file) + "\n")
	b.WriteString(m.progress.ViewAs(m.percent()))
	fmt.Fprintf(&b, " %d/%d", m.processed, m.total)
	if m.failed > 0 {
		b.WriteString(" " + formatter.StyleRed.Render(fmt.Sprintf("(%d failed)", m.failed)))
	}
	b.WriteString("\n")
	if m.lastSlug != "" {
		b.WriteString(formatter.Dim(m.lastSlug) + "\n")
	}
	return b.String()
}

// runImportWithProgress runs the import in the background and renders its
// progress until it finishes or the user presses ctrl+c.
func runImportWithProgress(ctx context.Context, svc service.ImportService, path string, out io.Writer) (*service.ImportResult, error) {
	p := tea.NewProgram(newImportModel(filepath.Base(path)), tea.WithOutput(out))
	go func() {
		res, err := svc.ImportFile(ctx, path, service.ImportObserverFunc(func(o service.RowOutcome) {
			p.Send(importRowMsg(o))
		}))
		p.Send(importDoneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running import view: %w", err)
	}
	m := final.(importModel)
	if m.interrupted {
		return nil, fmt.Errorf("%w after %d of %d rows", errImportInterrupted, m.processed, m.total)
	}
	return m.res, m.err
}
