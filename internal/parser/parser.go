// Package parser turns free-form generated recipe text into a GeneratedRecipe.
package parser

import (
	"strings"
	"unicode"

	"recipe-rag/internal/domain"
)

type state int

const (
	statePreamble state = iota
	stateScanning
	stateIngredients
	stateInstructions
)

// Parse reads a title from the first line, then collects bullet or numbered
// lines under "ingredient" and "instruction" headers. It never fails: lines
// it cannot place are dropped, and content before any header is ignored.
//
// A header line is any line whose lowercase form contains "ingredient" or
// "instruction"; when both appear, ingredients wins.
func Parse(raw string) domain.GeneratedRecipe {
	recipe := domain.GeneratedRecipe{Ingredients: []string{}, Instructions: []string{}}
	st := statePreamble
	for _, line := range strings.Split(raw, "\n") {
		if st == statePreamble {
			recipe.Title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
			st = stateScanning
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "ingredient") {
			st = stateIngredients
			continue
		}
		if strings.Contains(lower, "instruction") {
			st = stateInstructions
			continue
		}
		if !isListItem(line) {
			continue
		}
		switch st {
		case stateIngredients:
			recipe.Ingredients = append(recipe.Ingredients, strings.TrimLeft(line, "- "))
		case stateInstructions:
			step := strings.TrimLeft(strings.TrimLeft(line, "- "), "1234567890. ")
			recipe.Instructions = append(recipe.Instructions, step)
		}
	}
	return recipe
}

// isListItem reports whether a line starts with a dash bullet or has a digit
// in its first three characters.
func isListItem(line string) bool {
	if strings.HasPrefix(line, "-") {
		return true
	}
	for i, r := range []rune(line) {
		if i == 3 {
			break
		}
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
