package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/service"
)

type fakePort struct {
	last service.GenerateRequest
	out  domain.Outcome
}

func (f *fakePort) Search([]string, int) ([]domain.RankedMatch, error) {
	return []domain.RankedMatch{{Entry: &domain.CorpusEntry{Name: "Garlic Chicken"}, Score: 0.5}}, nil
}

func (f *fakePort) Generate(_ context.Context, req service.GenerateRequest) domain.Outcome {
	f.last = req
	return f.out
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func TestModel_generateFlow(t *testing.T) {
	port := &fakePort{out: domain.Outcome{Kind: domain.KindOK, Recipe: domain.GeneratedRecipe{
		Title:        "Garlic Stew",
		Ingredients:  []string{"garlic"},
		Instructions: []string{"Cook"},
	}}}
	m := sized(New(port, "3 recipes", 0))
	m = typeText(m, "chicken, garlic")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(next.(Model), "vegan")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.busy || cmd == nil {
		t.Fatal("enter should start generation")
	}
	msg := cmd()
	if got := strings.Join(port.last.Keywords, "|"); got != "chicken|garlic" {
		t.Errorf("keywords = %q", got)
	}
	if port.last.DietaryRestrictions != "vegan" {
		t.Errorf("diet = %q", port.last.DietaryRestrictions)
	}

	next, _ = m.Update(msg)
	m = next.(Model)
	if m.busy {
		t.Error("busy should clear after the result arrives")
	}
	if !strings.Contains(m.status, "Garlic Chicken") {
		t.Errorf("status = %q", m.status)
	}
	if view := m.renderRecipe(); !strings.Contains(view, "Garlic Stew") || !strings.Contains(view, "1. Cook") {
		t.Errorf("recipe view = %q", view)
	}
}

func TestModel_requiresKeywords(t *testing.T) {
	m := sized(New(&fakePort{}, "", 0))
	m = typeText(m, " , ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("no command expected without keywords")
	}
	if !strings.Contains(next.(Model).status, "at least one") {
		t.Errorf("status = %q", next.(Model).status)
	}
}

func TestStatusLine_failure(t *testing.T) {
	got := statusLine(domain.Outcome{Kind: domain.KindFailed, Reason: "timeout"}, nil)
	if got != "Generation failed: timeout" {
		t.Errorf("statusLine = %q", got)
	}
}
