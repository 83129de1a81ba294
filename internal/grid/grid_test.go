package grid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fillSlot writes one complete game slot with its top-left cell at ref.
func fillSlot(src *MemorySource, ref, date string, names, ids [4]string, scoreA, scoreB string) {
	geom := DefaultGeometry()
	col, row := mustCoords(ref)
	if date != "" {
		src.Set(row+geom.DateOffset[0], col+geom.DateOffset[1], date)
	}
	for i := 0; i < 4; i++ {
		src.Set(row+i, col+geom.NameColOffset, names[i])
		src.Set(row+i, col+geom.IDColOffset, ids[i])
	}
	src.Set(row+geom.ScoreRowA, col+geom.ScoreColOffset, scoreA)
	src.Set(row+geom.ScoreRowB, col+geom.ScoreColOffset, scoreB)
}

func mustCoords(ref string) (col, row int) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		panic(err)
	}
	return col, row
}

func TestReadSlot(t *testing.T) {
	src := NewMemorySource()
	fillSlot(src, "B2", "2025/04/05",
		[4]string{"山田", "鈴木", "佐藤", "田中"},
		[4]string{"10", "11", "12", "13"},
		"5", "2")

	geom := DefaultGeometry()
	raw, err := geom.ReadSlot(src, 2, 2)
	require.NoError(t, err)

	assert.True(t, raw.HasData)
	assert.Equal(t, "B2", raw.Cell)
	assert.Equal(t, "2025/04/05", raw.DateRaw)
	assert.Equal(t, RawPlayer{Name: "山田", ID: "10"}, raw.Players[0])
	assert.Equal(t, RawPlayer{Name: "田中", ID: "13"}, raw.Players[3])
	assert.Equal(t, "5", raw.ScoreA)
	assert.Equal(t, "2", raw.ScoreB)
}

func TestReadSlotEmpty(t *testing.T) {
	src := NewMemorySource()
	geom := DefaultGeometry()

	raw, err := geom.ReadSlot(src, 2, 2)
	require.NoError(t, err)
	assert.False(t, raw.HasData)
}

func TestReadSlotWhitespaceOnlyIsEmpty(t *testing.T) {
	src := NewMemorySource()
	src.SetCell("B2", "   ")
	geom := DefaultGeometry()

	raw, err := geom.ReadSlot(src, 2, 2)
	require.NoError(t, err)
	assert.False(t, raw.HasData)
}

func TestReadPageOrder(t *testing.T) {
	src := NewMemorySource()
	// Second slot of the left column and first slot of the right column.
	fillSlot(src, "B6", "", [4]string{"a", "b", "c", "d"}, [4]string{"1", "2", "3", "4"}, "5", "0")
	fillSlot(src, "H2", "", [4]string{"e", "f", "g", "h"}, [4]string{"5", "6", "7", "8"}, "0", "5")

	geom := DefaultGeometry()
	games, err := geom.ReadPage(src, geom.Pages[0])
	require.NoError(t, err)
	require.Len(t, games, 12)

	assert.False(t, games[0].HasData)
	assert.True(t, games[1].HasData)
	assert.Equal(t, "B6", games[1].Cell)
	assert.True(t, games[6].HasData)
	assert.Equal(t, "H2", games[6].Cell)
	for _, i := range []int{2, 3, 4, 5, 7, 8, 9, 10, 11} {
		assert.False(t, games[i].HasData, "slot %d should be empty", i)
	}
}

func TestDefaultGeometryPages(t *testing.T) {
	geom := DefaultGeometry()
	require.Len(t, geom.Pages, 3)
	assert.Equal(t, 1, geom.Pages[0].StartGameNo)
	assert.Equal(t, 13, geom.Pages[1].StartGameNo)
	assert.Equal(t, 25, geom.Pages[2].StartGameNo)
	assert.Len(t, geom.Positions, 12)
}

func TestXLSXSource(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "2025/04/05"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", " 山田 "))
	path := filepath.Join(t.TempDir(), "grid.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src, err := OpenXLSX(path, "")
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, "Sheet1", src.Sheet())

	v, err := src.Cell(2, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025/04/05", v)

	v, err = src.Cell(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "山田", v)

	_, err = OpenXLSX(path, "no-such-sheet")
	assert.Error(t, err)
}

func TestParseCellDate(t *testing.T) {
	for _, raw := range []string{"2025/04/05", "2025-04-05", "2025/4/5"} {
		parsed, ok := ParseCellDate(raw)
		require.True(t, ok, "should parse %q", raw)
		assert.Equal(t, "2025-04-05", parsed.Format("2006-01-02"))
	}

	_, ok := ParseCellDate("not a date")
	assert.False(t, ok)
}
