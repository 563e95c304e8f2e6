// Package render formats generated recipes as plain text.
package render

import (
	"fmt"
	"io"
	"strings"

	"recipe-rag/internal/domain"
)

var rule = strings.Repeat("-", 50)

// Text returns recipe as a titled document with bulleted ingredients and
// numbered instructions.
func Text(recipe domain.GeneratedRecipe) string {
	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "# %s\n", recipe.Title)
	b.WriteString(rule + "\n\n")

	b.WriteString("## Ingredients\n\n")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}

	b.WriteString("\n## Instructions\n\n")
	for i, step := range recipe.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\nEnjoy!\n")
	return b.String()
}

// Write writes Text(recipe) to w.
func Write(w io.Writer, recipe domain.GeneratedRecipe) error {
	_, err := io.WriteString(w, Text(recipe))
	return err
}
