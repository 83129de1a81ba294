package grid

import (
	"time"

	"github.com/xuri/excelize/v2"
)

// SlotGeometry fixes where slots and their sub-cells live relative to a
// page's top-left cell. All offsets are zero-based.
type SlotGeometry struct {
	// Positions are the [row, col] offsets of each slot on a page, in
	// reading order.
	Positions [][2]int

	// DateOffset locates the slot's date marker cell.
	DateOffset [2]int

	// NameColOffset, IDColOffset and ScoreColOffset are column offsets of
	// the per-player sub-cells. Player rows are the slot's four rows in
	// order: team A first and second, team B first and second.
	NameColOffset  int
	IDColOffset    int
	ScoreColOffset int

	// ScoreRowA and ScoreRowB are row offsets of the two team score cells.
	ScoreRowA int
	ScoreRowB int

	// SlotRows and SlotCols bound the area scanned for the empty-slot check.
	SlotRows int
	SlotCols int

	Pages []Page
}

// DefaultGeometry returns the production grid layout: three pages of twelve
// slots laid out in two columns of six.
func DefaultGeometry() SlotGeometry {
	return SlotGeometry{
		Positions: [][2]int{
			{0, 0}, {4, 0}, {8, 0}, {12, 0}, {16, 0}, {20, 0},
			{0, 6}, {4, 6}, {8, 6}, {12, 6}, {16, 6}, {20, 6},
		},
		DateOffset:     [2]int{0, 0},
		NameColOffset:  1,
		IDColOffset:    2,
		ScoreColOffset: 3,
		ScoreRowA:      0,
		ScoreRowB:      2,
		SlotRows:       4,
		SlotCols:       4,
		Pages: []Page{
			{TopLeft: "B2", StartGameNo: 1, Name: "page-1"},
			{TopLeft: "B28", StartGameNo: 13, Name: "page-2"},
			{TopLeft: "B54", StartGameNo: 25, Name: "page-3"},
		},
	}
}

// ReadSlot pulls one slot's raw content. row and col are the 1-based
// coordinates of the slot's top-left cell.
func (g SlotGeometry) ReadSlot(src Source, row, col int) (RawGame, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return RawGame{}, err
	}
	raw := RawGame{Cell: cell}

	for r := 0; r < g.SlotRows; r++ {
		for c := 0; c < g.SlotCols; c++ {
			v, err := src.Cell(row+r, col+c)
			if err != nil {
				return RawGame{}, err
			}
			if v != "" {
				raw.HasData = true
			}
		}
	}
	if !raw.HasData {
		return raw, nil
	}

	raw.DateRaw, err = src.Cell(row+g.DateOffset[0], col+g.DateOffset[1])
	if err != nil {
		return RawGame{}, err
	}
	for i := 0; i < 4; i++ {
		raw.Players[i].Name, err = src.Cell(row+i, col+g.NameColOffset)
		if err != nil {
			return RawGame{}, err
		}
		raw.Players[i].ID, err = src.Cell(row+i, col+g.IDColOffset)
		if err != nil {
			return RawGame{}, err
		}
	}
	raw.ScoreA, err = src.Cell(row+g.ScoreRowA, col+g.ScoreColOffset)
	if err != nil {
		return RawGame{}, err
	}
	raw.ScoreB, err = src.Cell(row+g.ScoreRowB, col+g.ScoreColOffset)
	if err != nil {
		return RawGame{}, err
	}
	return raw, nil
}

// ReadPage pulls every slot of a page in reading order.
func (g SlotGeometry) ReadPage(src Source, page Page) ([]RawGame, error) {
	col, row, err := excelize.CellNameToCoordinates(page.TopLeft)
	if err != nil {
		return nil, err
	}
	games := make([]RawGame, 0, len(g.Positions))
	for _, pos := range g.Positions {
		raw, err := g.ReadSlot(src, row+pos[0], col+pos[1])
		if err != nil {
			return nil, err
		}
		games = append(games, raw)
	}
	return games, nil
}

var dateLayouts = []string{
	"2006/01/02",
	"2006/1/2",
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"2006年1月2日",
}

// ParseCellDate interprets a raw date cell in any of the display formats the
// grid produces.
func ParseCellDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
