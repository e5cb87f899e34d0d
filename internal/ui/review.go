// Package ui renders the interactive review session. It is one possible
// front end over review.Session; the scripted accept/reject commands drive
// the same session without any of this.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"snapforge/internal/diffline"
	"snapforge/internal/review"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

type reviewModel struct {
	session  *review.Session
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	err      error
}

// NewReviewModel returns a Bubble Tea model driving the session.
func NewReviewModel(session *review.Session) tea.Model {
	return &reviewModel{session: session}
}

// Err returns the decision error that aborted the session, if any.
func (m *reviewModel) Err() error { return m.err }

// Counts returns the session tally for the final CLI summary.
func (m *reviewModel) Counts() review.Counts { return m.session.Counts() }

func (m *reviewModel) Init() tea.Cmd {
	return nil
}

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return m.decide(review.DecisionAccept)
		case "r":
			return m.decide(review.DecisionReject)
		case "s":
			return m.decide(review.DecisionSkip)
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - 5
		if bodyHeight < 3 {
			bodyHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
			m.loadCurrent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		return m, nil
	}
	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *reviewModel) decide(d review.Decision) (tea.Model, tea.Cmd) {
	if m.session.Done() {
		return m, tea.Quit
	}
	if err := m.session.Decide(d); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if m.session.Done() {
		return m, tea.Quit
	}
	m.loadCurrent()
	return m, nil
}

func (m *reviewModel) loadCurrent() {
	item := m.session.Next()
	if item == nil || !m.ready {
		return
	}
	m.viewport.SetContent(renderItem(item))
	m.viewport.GotoTop()
}

func renderItem(item *review.Item) string {
	p := item.Pending
	if p.IsNew() {
		var b strings.Builder
		b.WriteString(newStyle.Render("new snapshot:"))
		b.WriteByte('\n')
		for _, line := range strings.Split(p.New, "\n") {
			b.WriteString(addStyle.Render("+" + line))
			b.WriteByte('\n')
		}
		return b.String()
	}

	var b strings.Builder
	for _, h := range p.Diff {
		b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d +%d @@", h.OldStart, h.NewStart)))
		b.WriteByte('\n')
		for _, line := range h.Lines {
			text := line.Op.String() + line.Text
			switch line.Op {
			case diffline.OpRemove:
				text = removeStyle.Render(text)
			case diffline.OpAdd:
				text = addStyle.Render(text)
			}
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *reviewModel) View() string {
	if !m.ready {
		return ""
	}
	item := m.session.Next()
	if item == nil {
		return ""
	}

	current, total := m.session.Position()
	kind := "mismatch"
	if item.Pending.IsNew() {
		kind = "new"
	}
	header := fmt.Sprintf("reviewing %d/%d  %s  (%s)", current, total, item.Pending.Identity.Source(), kind)
	header = truncate(header, m.width)

	counts := m.session.Counts()
	status := fmt.Sprintf("accepted %d  rejected %d  skipped %d", counts.Accepted, counts.Rejected, counts.Skipped)

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(countStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("a accept · r reject · s skip · q quit"))
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
