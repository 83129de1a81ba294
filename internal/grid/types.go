package grid

// Source exposes read-only cell access to one score-entry grid. Rows and
// columns are 1-based, matching spreadsheet coordinates.
type Source interface {
	// Cell returns the trimmed display value at (row, col), empty for blank
	// cells and cells outside the populated area.
	Cell(row, col int) (string, error)
}

// RawPlayer is one player line of a slot, prior to validation.
type RawPlayer struct {
	Name string
	ID   string
}

// RawGame is one game slot's snapshot pulled from the grid, prior to
// validation. It is transient: discarded whether accepted or rejected.
type RawGame struct {
	Cell    string // A1 reference of the slot's top-left cell
	DateRaw string // raw content of the slot's date marker cell
	Players [4]RawPlayer
	ScoreA  string
	ScoreB  string
	HasData bool
}

// Page describes one fixed page of game slots within a grid.
type Page struct {
	TopLeft     string // A1 reference of the page's top-left slot
	StartGameNo int    // audit numbering offset for the page's first slot
	Name        string
}
