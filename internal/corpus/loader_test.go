package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	xunicode "golang.org/x/text/encoding/unicode"

	"recipe-rag/internal/domain"
)

const sampleCSV = `Name,RecipeCategory,Keywords,RecipeIngredientParts,RecipeInstructions,Calories
Garlic Chicken,Chicken,"c(""Easy"")","c(""chicken"", ""garlic"", ""broth"")","c(""Brown the chicken."", ""Add garlic, then broth."")",300
Plain Cake,Dessert,Sweet,"['flour', 'sugar', 'eggs']","Mix, bake",500
Mystery,,,,,
`

func TestLoadCSV(t *testing.T) {
	l := NewLoader(nil)
	entries, stats, err := l.LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	chicken := entries[0]
	if !reflect.DeepEqual(chicken.IngredientsList, []string{"chicken", "garlic", "broth"}) {
		t.Errorf("ingredients = %q", chicken.IngredientsList)
	}
	if !reflect.DeepEqual(chicken.InstructionsList, []string{"Brown the chicken.", "Add garlic, then broth."}) {
		t.Errorf("instructions = %q", chicken.InstructionsList)
	}
	wantCombined := `Garlic Chicken Chicken c("Easy") c("chicken", "garlic", "broth")`
	if chicken.CombinedText != wantCombined {
		t.Errorf("combined = %q, want %q", chicken.CombinedText, wantCombined)
	}

	cake := entries[1]
	if !reflect.DeepEqual(cake.IngredientsList, []string{"flour", "sugar", "eggs"}) {
		t.Errorf("cake ingredients = %q", cake.IngredientsList)
	}
	if !reflect.DeepEqual(cake.InstructionsList, []string{"Mix", "bake"}) {
		t.Errorf("cake instructions = %q", cake.InstructionsList)
	}

	mystery := entries[2]
	if len(mystery.IngredientsList) != 0 || len(mystery.InstructionsList) != 0 {
		t.Errorf("missing cells should give empty lists, got %q / %q", mystery.IngredientsList, mystery.InstructionsList)
	}

	want := LoadStats{Rows: 3, InstructionFallbacks: 1, MissingIngredients: 1, MissingInstructions: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestLoadCSV_missingColumn(t *testing.T) {
	_, _, err := NewLoader(nil).LoadCSV(strings.NewReader("Name,Keywords\nA,b\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), ColumnIngredientParts) {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestLoadCSV_columnOrderIsFree(t *testing.T) {
	in := "RecipeInstructions,RecipeIngredientParts,Keywords,RecipeCategory,Name\n" +
		`"c(""Stir"")","c(""rice"")",Quick,Side,Rice` + "\n"
	entries, _, err := NewLoader(nil).LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name != "Rice" || entries[0].IngredientsList[0] != "rice" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestLoadCSV_encodings(t *testing.T) {
	t.Run("utf-8 bom", func(t *testing.T) {
		in := "\xEF\xBB\xBF" + sampleCSV
		entries, _, err := NewLoader(nil).LoadCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if entries[0].Name != "Garlic Chicken" {
			t.Errorf("name = %q", entries[0].Name)
		}
	})

	t.Run("utf-16 with bom", func(t *testing.T) {
		enc := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewEncoder()
		in, err := enc.String(sampleCSV)
		if err != nil {
			t.Fatal(err)
		}
		entries, _, err := NewLoader(nil).LoadCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 3 || entries[1].Name != "Plain Cake" {
			t.Errorf("unexpected entries %+v", entries)
		}
	})

	t.Run("windows-1252", func(t *testing.T) {
		in := "Name,RecipeCategory,Keywords,RecipeIngredientParts,RecipeInstructions\n" +
			"Cr\xE8me Br\xFBl\xE9e,Dessert,,\"c(\"\"cr\xE8me\"\")\",\n"
		entries, _, err := NewLoader(nil).LoadCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if entries[0].Name != "Crème Brûlée" {
			t.Errorf("name = %q", entries[0].Name)
		}
		if entries[0].IngredientsList[0] != "crème" {
			t.Errorf("ingredients = %q", entries[0].IngredientsList)
		}
	})
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{ColumnName, ColumnCategory, ColumnKeywords, ColumnIngredientParts, ColumnInstructions},
		{"Tomato Soup", "Soup", "Warm", `c("tomato", "salt")`, `c("Boil tomato", "Add salt")`},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "recipes.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	entries, stats, err := NewLoader(nil).LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Rows != 1 {
		t.Fatalf("rows = %d", stats.Rows)
	}
	if !reflect.DeepEqual(entries[0].IngredientsList, []string{"tomato", "salt"}) {
		t.Errorf("ingredients = %q", entries[0].IngredientsList)
	}
	if !reflect.DeepEqual(entries[0].InstructionsList, []string{"Boil tomato", "Add salt"}) {
		t.Errorf("instructions = %q", entries[0].InstructionsList)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recipes.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	entries, _, err := NewLoader(nil).LoadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries", len(entries))
	}

	if _, _, err := NewLoader(nil).LoadFile(filepath.Join(dir, "recipes.json")); err == nil {
		t.Error("expected error for missing file")
	}
	jsonPath := filepath.Join(dir, "recipes.json")
	if err := os.WriteFile(jsonPath, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewLoader(nil).LoadFile(jsonPath); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestNewEntry_derivedFields(t *testing.T) {
	entry, ing, ins := NewEntry(Row{
		ColumnName:            "Stew",
		ColumnIngredientParts: `c("beef")`,
	})
	if ing.Kind != domain.KindOK {
		t.Errorf("ingredients kind = %v", ing.Kind)
	}
	if ins.Kind != domain.KindFailed {
		t.Errorf("missing instructions kind = %v", ins.Kind)
	}
	if entry.CombinedText != `Stew   c("beef")` {
		t.Errorf("combined = %q", entry.CombinedText)
	}
}
