package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type counter struct {
	n     int
	width int
}

type incMsg struct{}

func (c counter) Init() tea.Cmd { return func() tea.Msg { return incMsg{} } }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case incMsg:
		c.n++
		if c.n == 3 {
			return c, tea.Quit
		}
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		return c, tea.Batch(
			func() tea.Msg { return incMsg{} },
			func() tea.Msg { return incMsg{} },
		)
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsBatchesAndStopsOnQuit(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	assert.Equal(t, 80, d.Model.(counter).width)

	d.DrainInit()
	assert.Equal(t, 1, d.Model.(counter).n)

	d.PressCtrlC()
	assert.Equal(t, 3, d.Model.(counter).n)
	assert.True(t, d.Quitting)

	d.Send(incMsg{})
	assert.Equal(t, 3, d.Model.(counter).n)
}
