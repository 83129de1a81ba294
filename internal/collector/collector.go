package collector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/matchlog"
	"github.com/kmorita/scorebook/internal/roster"
)

// Collector walks a score grid, validates each non-empty slot and gathers
// accepted games into a caller-owned batch. Commit is a separate, explicit
// step.
type Collector struct {
	store     matchlog.Store
	validator *Validator
	geom      grid.SlotGeometry
}

func New(store matchlog.Store, dir roster.Directory, geom grid.SlotGeometry) *Collector {
	return &Collector{
		store:     store,
		validator: NewValidator(dir),
		geom:      geom,
	}
}

// numberSource resolves the next game number against both the committed
// store and the pending batch, the batch taking precedence within a run.
type numberSource struct {
	store matchlog.Store
	batch *Batch
}

func (n numberSource) NextGameNumber(date string) (int, error) {
	max, err := n.store.MaxGameNumber(date)
	if err != nil {
		return 0, err
	}
	if pending := n.batch.MaxGameNumber(date); pending > max {
		max = pending
	}
	return max + 1, nil
}

// CollectSheet walks one page's slots in reading order. prevValidDate is the
// canonical date carried in from earlier pages; empty when none has been
// seen yet. Empty slots are skipped without counting.
func (c *Collector) CollectSheet(src grid.Source, page grid.Page, batch *Batch, prevValidDate string) (SheetResult, error) {
	games, err := c.geom.ReadPage(src, page)
	if err != nil {
		return SheetResult{}, err
	}

	result := SheetResult{Page: page, LastValidDate: prevValidDate}
	nums := numberSource{store: c.store, batch: batch}

	for i, raw := range games {
		if !raw.HasData {
			continue
		}

		if raw.DateRaw != "" {
			if t, ok := grid.ParseCellDate(raw.DateRaw); ok {
				result.LastValidDate = matchlog.FormatDate(t)
			} else {
				log.Warn("Unreadable date marker, carrying previous date forward.", "cell", raw.Cell, "value", raw.DateRaw)
			}
		}

		detail := auditDetail(raw, page.StartGameNo+i, result.LastValidDate)
		records, rejection, err := c.validator.Validate(raw, result.LastValidDate, nums)
		if err != nil {
			return SheetResult{}, err
		}
		if rejection != nil {
			detail.Rejection = rejection
			result.Rejected++
			log.Warn("Rejected game slot.", "cell", raw.Cell, "reason", rejection.String())
		} else {
			detail.Accepted = true
			detail.PointsA = records[0].Points
			detail.PointsB = records[2].Points
			batch.Add(records)
			result.Accepted++
		}
		result.Details = append(result.Details, detail)
	}
	return result, nil
}

// Collect walks every page of the grid, carrying the last valid date across
// page boundaries.
func (c *Collector) Collect(src grid.Source, batch *Batch) (Result, error) {
	var result Result
	date := ""
	for _, page := range c.geom.Pages {
		sheet, err := c.CollectSheet(src, page, batch, date)
		if err != nil {
			return Result{}, err
		}
		date = sheet.LastValidDate
		result.Sheets = append(result.Sheets, sheet)
		result.Accepted += sheet.Accepted
		result.Rejected += sheet.Rejected
	}
	log.Info("Collection pass finished.", "accepted", result.Accepted, "rejected", result.Rejected, "pending", batch.Len())
	return result, nil
}

// Commit appends the batch to the store and clears it. Returns the number of
// games committed.
func (c *Collector) Commit(batch *Batch) (int, error) {
	games := batch.Len() / 4
	if games == 0 {
		return 0, nil
	}
	if err := c.store.Append(batch.Records()); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	batch.Clear()
	log.Info("Committed batch to match log.", "games", games)
	return games, nil
}

// auditDetail formats one slot for operator-facing reporting.
func auditDetail(raw grid.RawGame, pageGameNo int, date string) GameDetail {
	display := ""
	if date != "" {
		if t, err := matchlog.ParseDate(date); err == nil {
			display = t.Format("2006/01/02")
		}
	}
	return GameDetail{
		Cell:      raw.Cell,
		GameLabel: fmt.Sprintf("%02d", pageGameNo),
		Date:      display,
		TeamA:     teamString(raw.Players[0], raw.Players[1]),
		TeamB:     teamString(raw.Players[2], raw.Players[3]),
	}
}

func teamString(p1, p2 grid.RawPlayer) string {
	return strings.Join([]string{
		fmt.Sprintf("%s(%s)", p1.Name, p1.ID),
		fmt.Sprintf("%s(%s)", p2.Name, p2.ID),
	}, "、")
}
