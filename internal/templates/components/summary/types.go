package summary

import (
	"fmt"
	"time"

	gridmodel "github.com/codr1/habitgrid/internal/summary"
)

type GridView struct {
	Grid gridmodel.Grid
	// Alert replaces the grid when the summary could not be loaded.
	Alert string
}

type CellView struct {
	gridmodel.Cell
	Href  string
	Title string
}

func NewCellView(cell gridmodel.Cell) CellView {
	view := CellView{Cell: cell}
	if cell.Filler {
		return view
	}
	view.Href = "/day?date=" + cell.Day.String()
	view.Title = cellTitle(cell)
	return view
}

func cellTitle(cell gridmodel.Cell) string {
	date := cell.Day.Time(time.UTC).Format("Mon, Jan 2")
	if !cell.HasSummary {
		return date + ": no habits completed"
	}
	return fmt.Sprintf("%s: %d/%d completed (%d%%)", date, cell.Completed, cell.Amount, cell.Percentage)
}

func levelVar(level int) string {
	if level <= 0 {
		return "var(--grid-empty)"
	}
	return fmt.Sprintf("var(--grid-level-%d)", level)
}
