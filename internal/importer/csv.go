// Package importer loads food storage items from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/pantry/internal/common"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/service"
)

// Columns lists the header an import file must carry, in any order.
var Columns = []string{"name", "quantity", "unit", "food_type", "expiration_date"}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// RowError records why a single row was rejected. Line is the 1-based line
// in the file, counting the header.
type RowError struct {
	Err  error
	Line int
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result summarizes an import.
type Result struct {
	Errors   []RowError
	Imported []*model.FoodItem
	Rows     int
}

// Importer creates one inventory item per CSV row.
type Importer struct {
	progress io.Writer
	types    service.FoodTypeResolver
	items    service.InventoryStore
}

// Option configures an Importer.
type Option func(*Importer)

// WithProgress draws a progress bar on w while importing.
func WithProgress(w io.Writer) Option {
	return func(i *Importer) {
		i.progress = w
	}
}

// New creates an importer writing through items and resolving the
// food_type column through types.
func New(types service.FoodTypeResolver, items service.InventoryStore, opts ...Option) *Importer {
	imp := &Importer{types: types, items: items}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Import reads every row of r and stores the valid ones. Rows that fail
// validation are collected in the result and do not stop the import.
// Storage and context failures abort it; rows stored before the failure
// stay stored.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, lines, err := readRecords(reader)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMissingColumn)
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := records[1:]
	result := &Result{Rows: len(rows)}
	bar := imp.newProgressBar(len(rows))

	for n, record := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		line := lines[n+1]
		item, err := imp.importRow(ctx, index, record)
		switch {
		case err == nil:
			result.Imported = append(result.Imported, item)
		case common.IsUserError(err):
			result.Errors = append(result.Errors, RowError{Line: line, Err: err})
			slog.Debug("skipped CSV row", "line", line, "error", err)
		default:
			return result, fmt.Errorf("failed to import line %d: %w", line, err)
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	slog.Info("imported food items", "rows", result.Rows, "imported", len(result.Imported), "rejected", len(result.Errors))
	return result, nil
}

func (imp *Importer) importRow(ctx context.Context, index map[string]int, record []string) (*model.FoodItem, error) {
	field := func(name string) string {
		if i := index[name]; i < len(record) {
			return record[i]
		}
		return ""
	}

	return service.SaveItem(ctx, imp.types, imp.items, 0, field("food_type"), model.ItemInput{
		Name:           field("name"),
		Quantity:       field("quantity"),
		Unit:           field("unit"),
		ExpirationDate: field("expiration_date"),
	})
}

func (imp *Importer) newProgressBar(total int) *progressbar.ProgressBar {
	if imp.progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(imp.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing items...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(imp.progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// readRecords reads every record along with the file line it starts on.
// Blank lines are skipped and quoted fields may span lines, so the record
// index alone does not give the line.
func readRecords(reader *csv.Reader) ([][]string, []int, error) {
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, lines, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		// Spreadsheet exports often start with a byte order mark.
		col = strings.TrimPrefix(col, "\ufeff")
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}
