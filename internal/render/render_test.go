package render

import (
	"bytes"
	"strings"
	"testing"

	"recipe-rag/internal/domain"
	"recipe-rag/internal/parser"
)

func TestText(t *testing.T) {
	recipe := domain.GeneratedRecipe{
		Title:        "Tomato Soup",
		Ingredients:  []string{"tomato", "salt"},
		Instructions: []string{"Boil tomato", "Add salt"},
	}
	rule := strings.Repeat("-", 50)
	want := "\n" + rule + "\n# Tomato Soup\n" + rule + "\n\n" +
		"## Ingredients\n\n- tomato\n- salt\n" +
		"\n## Instructions\n\n1. Boil tomato\n2. Add salt\n" +
		"\nEnjoy!\n"
	if got := Text(recipe); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestText_parsesBack(t *testing.T) {
	recipe := domain.GeneratedRecipe{
		Title:        "Pancakes",
		Ingredients:  []string{"2 cups flour", "1 egg"},
		Instructions: []string{"Mix", "Fry"},
	}
	// the rule line precedes the title, so drop it before parsing
	text := strings.TrimLeft(Text(recipe), "\n-")
	got := parser.Parse(text)
	if got.Title != "Pancakes" {
		t.Errorf("Title = %q", got.Title)
	}
	if strings.Join(got.Ingredients, "|") != "2 cups flour|1 egg" {
		t.Errorf("Ingredients = %v", got.Ingredients)
	}
	if strings.Join(got.Instructions, "|") != "Mix|Fry" {
		t.Errorf("Instructions = %v", got.Instructions)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, domain.GeneratedRecipe{Title: "X"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "# X\n") {
		t.Errorf("output = %q", buf.String())
	}
}
