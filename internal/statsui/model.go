// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sprech/internal/model"
	"github.com/verte-zerg/sprech/internal/phoneme"
	"github.com/verte-zerg/sprech/internal/stats"
	"github.com/verte-zerg/sprech/internal/store"
)

const (
	tabOverview = iota
	tabPhonemeTable
	tabPhonemeCurves
)

const (
	plotHeight       = 8
	defaultSelection = 5
	fallbackWidth    = 80
)

// Filter fields in form order.
const (
	fieldSince = iota
	fieldLast
	fieldWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store  *store.Store
	table  *phoneme.Table
	cfg    model.StatsConfig
	report stats.Report

	errMsg      string
	curveErrMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	phonemeTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	selection       []string
	selectionCustom bool
	perAttempt      map[string]map[string]model.PhonemeAggregate

	selectMode  bool
	selectInput textinput.Model
	selectError string
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		table: phoneme.Default(),
		cfg:   cfg,
		tabs:  []string{"Overview", "Phoneme Table", "Phoneme Curves"},
	}
	if symbols, err := m.table.ParseSymbols(cfg.Phonemes); err == nil && len(symbols) > 0 {
		m.selection = symbols
		m.selectionCustom = true
	}
	m.filterInputs = []textinput.Model{
		newInput("Since (YYYY-MM-DD): "),
		newInput("Last: "),
		newInput("Curve window: "),
	}
	m.selectInput = newInput("Phonemes: ")
	m.selectInput.Placeholder = "ü, ch, r"
	m.phonemeTable = table.New(table.WithColumns(phonemeColumns()))
	m.phonemeTable.SetStyles(phonemeTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// Run opens the stats UI and blocks until it is closed.
func Run(st *store.Store, cfg model.StatsConfig) error {
	_, err := tea.NewProgram(NewModel(st, cfg), tea.WithAltScreen()).Run()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.selectMode {
			return m.updateSelect(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabPhonemeCurves {
				return m.startSelect()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabPhonemeTable {
				m.phonemeTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabPhonemeTable {
				m.phonemeTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabPhonemeTable {
			m.phonemeTable, cmd = m.phonemeTable.Update(msg)
			return m, cmd
		}
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.selectMode {
		return fitLines(m.renderSelectModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(lipgloss.Height(activeNavStyle.Render("X")), 1) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return fallbackWidth
	}
	return m.width
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.phonemeTable.SetWidth(m.width)
	m.phonemeTable.SetHeight(max(bodyHeight-1, 1))
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
	m.selectInput.Width = max(10, modalInnerWidth(m.width)-lipgloss.Width(m.selectInput.Prompt))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabPhonemeTable {
		m.phonemeTable.Focus()
	} else {
		m.phonemeTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
	return tabs + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: since=%s  last=%s  window=%d", since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q"
	if m.activeTab == tabPhonemeCurves {
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Phonemes: enter  Window: -/=  Settings: /  Quit: q"
	}
	help = headerStyle.Render(help)
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return fitLines(strings.Join(lines, "\n"), m.width, height)
	}
	if m.activeTab == tabPhonemeTable {
		switch {
		case len(m.report.Attempts) == 0:
			return fitLines("No attempts found.", m.width, height)
		case len(m.report.PhonemeAggsAll) == 0:
			return fitLines("No phoneme stats found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.phonemeTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.renderTabContents()
		return
	}
	m.errMsg = ""
	m.report = report
	if !m.selectionCustom {
		m.selection = stats.TopPhonemesByFrequency(report.PhonemeAggsAll, defaultSelection)
	}
	m.loadPerAttempt()
	m.phonemeTable.SetRows(phonemeRows(report.PhonemeAggsAll, m.table))
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) loadPerAttempt() {
	m.curveErrMsg = ""
	m.perAttempt = nil
	if len(m.report.Attempts) == 0 || len(m.selection) == 0 {
		return
	}
	per, err := m.store.ListPhonemeStatsForAttempts(context.Background(), m.report.AttemptIDs(), m.selection)
	if err != nil {
		m.curveErrMsg = err.Error()
		return
	}
	m.perAttempt = per
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	width := m.contentWidth()
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabPhonemeCurves].SetContent(m.renderPhonemeCurves(width))
}

func renderOverview(report stats.Report, window, width int) string {
	attempts := report.Attempts
	if len(attempts) == 0 {
		return "No attempts found."
	}
	var total float64
	best, words := 0, 0
	for _, a := range attempts {
		total += float64(a.Overall)
		best = max(best, a.Overall)
		words += a.Words
	}
	weakest := "-"
	weak := stats.SelectWeakPhonemes(report.PhonemeAggsWindow, 3)
	if len(weak) > 0 {
		symbols := make([]string, 0, len(weak))
		for s := range weak {
			symbols = append(symbols, s)
		}
		weakest = strings.Join(sortedSymbols(symbols), " ")
	}
	cards := []string{
		metricCard("Attempts", strconv.Itoa(len(attempts))),
		metricCard("Avg Overall", fmt.Sprintf("%.1f", total/float64(len(attempts)))),
		metricCard("Best", strconv.Itoa(best)),
		metricCard("Words", strconv.Itoa(words)),
		metricCard("Weakest", weakest),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4]))
	}
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, attempts, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func (m *Model) renderPhonemeCurves(width int) string {
	if len(m.report.Attempts) == 0 {
		return "No attempts found."
	}
	if m.curveErrMsg != "" {
		return fmt.Sprintf("Failed to load phoneme curves: %s", m.curveErrMsg)
	}
	if len(m.selection) == 0 {
		return "No phonemes selected. Press Enter to choose phonemes."
	}
	header := headerStyle.Render("Phonemes: " + strings.Join(m.selection, ", "))
	var buf bytes.Buffer
	if err := stats.RenderPhonemeCurves(&buf, m.report.Attempts, m.perAttempt, m.selection, m.cfg.CurveWindow, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render phoneme curves: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[fieldSince].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[fieldSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[fieldLast].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[fieldLast].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[fieldWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.StatsConfig, error) {
	cfg := m.cfg
	cfg.Since = nil
	if raw := strings.TrimSpace(m.filterInputs[fieldSince].Value()); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	cfg.Last = 0
	if raw := strings.TrimSpace(m.filterInputs[fieldLast].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	if raw := strings.TrimSpace(m.filterInputs[fieldWindow].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func (m *Model) startSelect() (tea.Model, tea.Cmd) {
	m.selectMode = true
	m.selectError = ""
	m.selectInput.SetValue(strings.Join(m.selection, ", "))
	return m, m.selectInput.Focus()
}

func (m *Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.selectMode = false
		m.selectError = ""
		return m, nil
	case tea.KeyEnter:
		symbols, err := m.table.ParseSymbols(m.selectInput.Value())
		if err != nil {
			m.selectError = err.Error()
			return m, nil
		}
		if len(symbols) == 0 {
			m.selectionCustom = false
			m.selection = stats.TopPhonemesByFrequency(m.report.PhonemeAggsAll, defaultSelection)
		} else {
			m.selectionCustom = true
			m.selection = symbols
		}
		m.selectMode = false
		m.selectError = ""
		m.loadPerAttempt()
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.selectInput, cmd = m.selectInput.Update(msg)
	return m, cmd
}

func (m *Model) renderSelectModal() string {
	body := []string{
		cardValueStyle.Render("Select Phonemes"),
		m.selectInput.View(),
		headerStyle.Render("Separate symbols with commas or spaces. Empty resets to most frequent."),
		headerStyle.Render("Known: " + strings.Join(m.table.Symbols(), " ")),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.selectError != "" {
		body = append(body, errorStyle.Render(m.selectError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
