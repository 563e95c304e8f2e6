// Package tui is the interactive recipe prompt.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/service"
)

// RecipePort is the TUI-facing subset of the recipe service.
type RecipePort interface {
	Search(keywords []string, topN int) ([]domain.RankedMatch, error)
	Generate(ctx context.Context, req service.GenerateRequest) domain.Outcome
}

const (
	focusKeywords = iota
	focusDiet
)

const previewMatches = 3

type generatedMsg struct {
	outcome domain.Outcome
	matches []domain.RankedMatch
}

// Model is the Bubble Tea model for the recipe prompt.
type Model struct {
	service  RecipePort
	keywords textinput.Model
	diet     textinput.Model
	focus    int
	viewport viewport.Model
	outcome  *domain.Outcome
	summary  string
	status   string
	busy     bool
	ready    bool
	timeout  time.Duration
}

// New creates a TUI model. timeout bounds each generation request; zero means none.
func New(svc RecipePort, summary string, timeout time.Duration) Model {
	kw := textinput.New()
	kw.Prompt = "Ingredients> "
	kw.Placeholder = "comma separated, e.g. chicken, garlic"
	kw.Focus()
	kw.CharLimit = 0

	diet := textinput.New()
	diet.Prompt = "Diet> "
	diet.Placeholder = "optional, e.g. vegetarian"
	diet.CharLimit = 0

	return Model{
		service:  svc,
		keywords: kw,
		diet:     diet,
		viewport: viewport.New(0, 0),
		summary:  summary,
		status:   "Enter ingredients and press Enter. Tab switches fields.",
		timeout:  timeout,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and generation events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + 2 + qh + 1 // header+summary, status, two inputs, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderRecipe())
		return m, nil
	case generatedMsg:
		m.busy = false
		m.outcome = &msg.outcome
		m.status = statusLine(msg.outcome, msg.matches)
		m.viewport.SetContent(m.renderRecipe())
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab", "shift+tab":
			m = m.toggleFocus()
			return m, textinput.Blink
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			if m.busy {
				return m, nil
			}
			kws := service.SplitKeywords(m.keywords.Value())
			if len(kws) == 0 {
				m.status = "Please enter at least one ingredient."
				return m, nil
			}
			m.busy = true
			m.status = fmt.Sprintf("Generating a recipe with %s...", strings.Join(kws, ", "))
			return m, m.generate(kws, strings.TrimSpace(m.diet.Value()))
		}
	}
	var cmd tea.Cmd
	if m.focus == focusKeywords {
		m.keywords, cmd = m.keywords.Update(msg)
	} else {
		m.diet, cmd = m.diet.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusKeywords {
		m.focus = focusDiet
		m.keywords.Blur()
		m.diet.Focus()
	} else {
		m.focus = focusKeywords
		m.diet.Blur()
		m.keywords.Focus()
	}
	return m
}

// generate runs the pipeline off the update loop.
func (m Model) generate(keywords []string, diet string) tea.Cmd {
	svc, timeout := m.service, m.timeout
	return func() tea.Msg {
		matches, _ := svc.Search(keywords, previewMatches)
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		out := svc.Generate(ctx, service.GenerateRequest{Keywords: keywords, DietaryRestrictions: diet})
		return generatedMsg{outcome: out, matches: matches}
	}
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Recipe Generator")
	summary := summaryStyle.Render(m.summary)
	inputs := inputBoxStyle.Render(m.keywords.View() + "\n" + m.diet.View())
	style := statusStyle
	if m.outcome != nil && m.outcome.Kind == domain.KindFailed && !m.busy {
		style = errorStyle
	}
	status := style.Render(m.status)
	recipe := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + recipe + "\n" + inputs + "\n" + status
}

func (m Model) renderRecipe() string {
	if m.outcome == nil {
		return "Hi, I am your personal chef. Tell me what you have and I will cook something up."
	}
	r := m.outcome.Recipe
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Ingredients"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • " + ing + "\n")
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Instructions"))
	b.WriteString("\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	return b.String()
}

func statusLine(out domain.Outcome, matches []domain.RankedMatch) string {
	if out.Kind == domain.KindFailed {
		return "Generation failed: " + out.Reason
	}
	if len(matches) == 0 {
		return "Enjoy!"
	}
	names := make([]string, 0, len(matches))
	for _, mt := range matches {
		names = append(names, fmt.Sprintf("%s (%.2f)", mt.Entry.Name, mt.Score))
	}
	return "Enjoy! Inspired by " + strings.Join(names, ", ")
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Underline(true)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
