// Package tui provides the Bubble Tea result viewer.
package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/scoring"
	"github.com/verte-zerg/sprech/internal/validity"
)

// Entry is one scored transcript shown by the viewer.
type Entry struct {
	Name    string
	Result  model.SessionResult
	Verdict validity.Verdict
}

// Model implements the Bubble Tea result viewer.
type Model struct {
	entries  []Entry
	current  int
	selected int

	width  int
	height int
}

var (
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD17F"))
	fairStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	poorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

// NewModel constructs a result viewer over the given entries.
func NewModel(entries []Entry) *Model {
	return &Model{entries: entries}
}

// Run opens the viewer on the terminal and blocks until it is closed.
func Run(entries []Entry) error {
	if len(entries) == 0 {
		logErrln("nothing to show")
		return nil
	}
	program := tea.NewProgram(NewModel(entries), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveWord(-1)
		case "right", "l", "tab":
			m.moveWord(1)
		case "home":
			m.selected = 0
		case "end":
			m.selected = max(len(m.words())-1, 0)
		case "n", "down", "j":
			m.moveEntry(1)
		case "p", "up", "k":
			m.moveEntry(-1)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) words() []model.WordScore {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[m.current].Result.Words
}

func (m *Model) moveWord(delta int) {
	n := len(m.words())
	if n == 0 {
		return
	}
	m.selected = (m.selected + delta + n) % n
}

func (m *Model) moveEntry(delta int) {
	next := m.current + delta
	if next < 0 || next >= len(m.entries) {
		return
	}
	m.current = next
	m.selected = 0
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.entries) == 0 {
		return ""
	}
	entry := m.entries[m.current]
	contentWidth := int(float64(m.width) * 0.70)
	if m.width == 0 {
		contentWidth = 0
	} else if contentWidth < 20 {
		contentWidth = m.width
	}

	var sections []string
	sections = append(sections, titleStyle.Render(m.header(entry)))
	if !entry.Verdict.Valid && len(entry.Result.Words) == 0 {
		sections = append(sections,
			poorStyle.Render(scoring.RetryMessage),
			mutedStyle.Render(fmt.Sprintf("reason: %s", entry.Verdict.Reason)))
	} else {
		sections = append(sections, wrapCells(buildCells(entry.Result.Words, m.selected), contentWidth))
		if detail := m.renderDetail(entry); detail != "" {
			sections = append(sections, detailStyle.Render(detail))
		}
	}
	sections = append(sections, renderSuggestions(entry.Result.Suggestions))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return body + "\n" + footer
}

func (m *Model) header(entry Entry) string {
	name := entry.Name
	if name == "" {
		name = "transcript"
	}
	if len(m.entries) > 1 {
		name = fmt.Sprintf("%s (%d/%d)", name, m.current+1, len(m.entries))
	}
	return fmt.Sprintf("%s  overall %s", name, styleForScore(entry.Result.Overall).Render(fmt.Sprint(entry.Result.Overall)))
}

func (m *Model) renderDetail(entry Entry) string {
	words := entry.Result.Words
	if m.selected < 0 || m.selected >= len(words) {
		return ""
	}
	w := words[m.selected]
	lines := []string{
		fmt.Sprintf("%s  %s  %s", titleStyle.Render(w.Word), styleForScore(w.Score).Render(fmt.Sprintf("%d", w.Score)), mutedStyle.Render(string(w.Difficulty))),
		w.Feedback,
	}
	if w.ExpectedDuration > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("duration %.2fs, expected %.2fs", w.Duration, w.ExpectedDuration)))
	}
	for _, ps := range w.PhonemeScores {
		lines = append(lines, fmt.Sprintf("  %s /%s/ heard /%s/ %s  %s",
			ps.Symbol, ps.ExpectedIPA, ps.ActualIPA,
			styleForScore(ps.Score).Render(fmt.Sprintf("%3d", ps.Score)),
			mutedStyle.Render(ps.Feedback)))
	}
	return strings.Join(lines, "\n")
}

func renderSuggestions(suggestions []string) string {
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		lines = append(lines, mutedStyle.Render("• "+s))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if len(m.entries) == 0 {
		return ""
	}
	b := m.entries[m.current].Result.Breakdown
	segments := []string{
		fmt.Sprintf("Vowels %d", b.VowelAccuracy),
		fmt.Sprintf("Consonants %d", b.ConsonantAccuracy),
		fmt.Sprintf("Rhythm %d", b.Rhythm),
		fmt.Sprintf("Stress %d", b.Stress),
		"←/→ word",
	}
	if len(m.entries) > 1 {
		segments = append(segments, "n/p transcript")
	}
	segments = append(segments, "q quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
