package corpus

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"recipe-rag/internal/domain"
)

// Source columns required in every corpus file.
const (
	ColumnName            = "Name"
	ColumnCategory        = "RecipeCategory"
	ColumnKeywords        = "Keywords"
	ColumnIngredientParts = "RecipeIngredientParts"
	ColumnInstructions    = "RecipeInstructions"
)

var requiredColumns = []string{ColumnName, ColumnCategory, ColumnKeywords, ColumnIngredientParts, ColumnInstructions}

// ErrUnsupportedFormat is returned for corpus files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported corpus format")

// Row is one raw source record keyed by column name. Missing or empty cells are nil.
type Row map[string]any

// LoadStats reports how list fields were parsed across a corpus.
type LoadStats struct {
	Rows                 int `json:"rows"`
	IngredientFallbacks  int `json:"ingredient_fallbacks"`
	InstructionFallbacks int `json:"instruction_fallbacks"`
	MissingIngredients   int `json:"missing_ingredients"`
	MissingInstructions  int `json:"missing_instructions"`
}

// Loader reads corpus files and normalizes them into corpus entries.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadFile reads a .csv or .xlsx corpus file.
func (l *Loader) LoadFile(path string) ([]domain.CorpusEntry, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return l.LoadCSV(f)
	case ".xlsx":
		return l.LoadXLSX(f)
	default:
		return nil, LoadStats{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadCSV reads a header-led CSV corpus in UTF-8, UTF-16 (with BOM) or Windows-1252.
func (l *Loader) LoadCSV(r io.Reader) ([]domain.CorpusEntry, LoadStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read corpus: %w", err)
	}
	cr := csv.NewReader(decodeReader(data))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("parse csv: %w", err)
	}
	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, LoadStats{}, err
	}
	entries, stats := l.Normalize(rows)
	return entries, stats, nil
}

// LoadXLSX reads the first sheet of an Excel workbook.
func (l *Loader) LoadXLSX(r io.Reader) ([]domain.CorpusEntry, LoadStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read corpus: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, LoadStats{}, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, LoadStats{}, err
	}
	entries, stats := l.Normalize(rows)
	return entries, stats, nil
}

// Normalize derives corpus entries from raw rows. It never fails; degraded
// field parses are counted in the returned stats.
func (l *Loader) Normalize(rows []Row) ([]domain.CorpusEntry, LoadStats) {
	stats := LoadStats{Rows: len(rows)}
	entries := make([]domain.CorpusEntry, len(rows))
	for i, row := range rows {
		entry, ingredients, instructions := NewEntry(row)
		entries[i] = entry
		countKind(ingredients, &stats.IngredientFallbacks, &stats.MissingIngredients)
		countKind(instructions, &stats.InstructionFallbacks, &stats.MissingInstructions)
		if ingredients.Kind == domain.KindFallback || instructions.Kind == domain.KindFallback {
			l.logger.Debug("field parse fallback",
				zap.Int("row", i),
				zap.String("name", entry.Name),
				zap.String("ingredients", ingredients.Reason),
				zap.String("instructions", instructions.Reason),
			)
		}
	}
	l.logger.Info("corpus normalized",
		zap.Int("rows", stats.Rows),
		zap.Int("ingredient_fallbacks", stats.IngredientFallbacks),
		zap.Int("instruction_fallbacks", stats.InstructionFallbacks),
	)
	return entries, stats
}

func countKind(res ListResult, fallbacks, missing *int) {
	switch res.Kind {
	case domain.KindFallback:
		*fallbacks++
	case domain.KindFailed:
		*missing++
	}
}

// NewEntry builds a corpus entry from a raw row and reports how each list field parsed.
func NewEntry(row Row) (domain.CorpusEntry, ListResult, ListResult) {
	ingredients := ParseList(row[ColumnIngredientParts])
	instructions := ParseList(row[ColumnInstructions])
	entry := domain.CorpusEntry{
		Name:             text(row[ColumnName]),
		Category:         text(row[ColumnCategory]),
		Keywords:         text(row[ColumnKeywords]),
		IngredientParts:  text(row[ColumnIngredientParts]),
		Instructions:     text(row[ColumnInstructions]),
		IngredientsList:  ingredients.Items,
		InstructionsList: instructions.Items,
	}
	entry.CombinedText = strings.Join([]string{entry.Name, entry.Category, entry.Keywords, entry.IngredientParts}, " ")
	return entry, ingredients, instructions
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

// rowsFromRecords maps header-led records to rows. Column order is free and
// extra columns are ignored; every required column must be present.
func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("corpus has no header row")
	}
	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[normalizeText(h)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("corpus is missing columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(requiredColumns))
		for _, col := range requiredColumns {
			idx := header[col]
			if idx >= len(rec) {
				continue
			}
			if v := normalizeText(rec[idx]); v != "" {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
