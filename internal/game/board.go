package game

import (
	"strings"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// MissingValue is shown for a column an attempt has no category for.
const MissingValue = "x"

// Cell is one column of one attempt on the board.
type Cell struct {
	Name        string            `json:"name"`
	Type        catalog.ValueType `json:"type,omitempty"`
	Code        int               `json:"code"`
	Correctness Correctness       `json:"correctness"`
	Value       string            `json:"value"`
	Missing     bool              `json:"missing,omitempty"`
}

// Row is one attempt on the board.
type Row struct {
	Answer    catalog.Answer `json:"answer"`
	Cells     []Cell         `json:"cells"`
	IsCorrect bool           `json:"isCorrect"`
}

// Columns returns the board columns: the mode's categories, or when the mode
// lists none, every category name seen across attempts in first-seen order.
func Columns(mode catalog.Mode, attempts []dailygame.Attempt) []string {
	if len(mode.Categories) > 0 {
		return append([]string(nil), mode.Categories...)
	}
	seen := map[string]bool{}
	var cols []string
	for _, a := range attempts {
		for _, c := range a.Categories {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// MergeCategory collapses every entry named name into one cell: the highest
// raw code wins and values are joined in source order.
func MergeCategory(categories []dailygame.ScoredCategory, name string) Cell {
	cell := Cell{Name: name, Code: dailygame.CodeMin - 1}
	var values []string
	for _, c := range categories {
		if c.Name != name {
			continue
		}
		if len(values) == 0 {
			cell.Type = c.Type
		}
		values = append(values, c.Value)
		if c.Correctness > cell.Code {
			cell.Code = c.Correctness
		}
	}
	if len(values) == 0 {
		return Cell{Name: name, Code: dailygame.CodeAbsent, Correctness: Unknown, Value: MissingValue, Missing: true}
	}
	cell.Value = strings.Join(values, ", ")
	cell.Correctness = Classify(cell.Type, cell.Code)
	return cell
}

// BuildBoard lays out attempts, most recent first, against columns.
func BuildBoard(columns []string, attempts []dailygame.Attempt) []Row {
	rows := make([]Row, 0, len(attempts))
	for _, a := range attempts {
		cells := make([]Cell, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, MergeCategory(a.Categories, col))
		}
		rows = append(rows, Row{Answer: a.Answer, Cells: cells, IsCorrect: a.IsCorrect})
	}
	return rows
}
