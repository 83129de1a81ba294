package roster

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"
)

// New creates a new roster store.
func New(db *sql.DB) Store {
	return &store{db: db}
}

const entryColumns = `
	player_id, display_name, is_member, handicap, remarks,
	prev_prev_rank, prev_rank,
	p2_total, p2_games, p2_gross,
	p1_total, p1_games, p1_gross,
	combined_total, combined_games, combined_gross,
	prior_handicap, delta
`

func scanEntry(scanner interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := scanner.Scan(
		&e.PlayerID, &e.DisplayName, &e.IsMember, &e.Handicap, &e.Remarks,
		&e.PrevPrevRank, &e.PrevRank,
		&e.Ledger.P2Total, &e.Ledger.P2Games, &e.Ledger.P2Gross,
		&e.Ledger.P1Total, &e.Ledger.P1Games, &e.Ledger.P1Gross,
		&e.Ledger.CombinedTotal, &e.Ledger.CombinedGames, &e.Ledger.CombinedGross,
		&e.Ledger.PriorHandicap, &e.Ledger.Delta,
	)
	return e, err
}

func (s *store) Lookup(playerID string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+entryColumns+" FROM roster WHERE player_id = ?", playerID)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("failed to look up player %s: %w", playerID, err)
	}
	return e, true, nil
}

func (s *store) LookupAllIDs() (mapset.Set[string], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT player_id FROM roster")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := mapset.NewSet[string]()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids.Add(id)
	}
	return ids, rows.Err()
}

func (s *store) All() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allLocked()
}

func (s *store) allLocked() ([]Entry, error) {
	rows, err := s.db.Query("SELECT " + entryColumns + " FROM roster ORDER BY player_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			log.Error("Failed to scan roster row", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM roster").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *store) Upsert(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO roster (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			display_name = excluded.display_name,
			is_member = excluded.is_member,
			handicap = excluded.handicap,
			remarks = excluded.remarks,
			prev_prev_rank = excluded.prev_prev_rank,
			prev_rank = excluded.prev_rank,
			p2_total = excluded.p2_total,
			p2_games = excluded.p2_games,
			p2_gross = excluded.p2_gross,
			p1_total = excluded.p1_total,
			p1_games = excluded.p1_games,
			p1_gross = excluded.p1_gross,
			combined_total = excluded.combined_total,
			combined_games = excluded.combined_games,
			combined_gross = excluded.combined_gross,
			prior_handicap = excluded.prior_handicap,
			delta = excluded.delta;
	`, entryArgs(e)...)
	return err
}

func entryArgs(e Entry) []any {
	return []any{
		e.PlayerID, e.DisplayName, e.IsMember, e.Handicap, e.Remarks,
		e.PrevPrevRank, e.PrevRank,
		e.Ledger.P2Total, e.Ledger.P2Games, e.Ledger.P2Gross,
		e.Ledger.P1Total, e.Ledger.P1Games, e.Ledger.P1Gross,
		e.Ledger.CombinedTotal, e.Ledger.CombinedGames, e.Ledger.CombinedGross,
		e.Ledger.PriorHandicap, e.Ledger.Delta,
	}
}

// SaveLedger persists the post-recalculation state of every entry. All rows
// are written in one transaction so a failure leaves the ledger untouched.
func (s *store) SaveLedger(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		UPDATE roster SET
			handicap = ?, remarks = ?,
			prev_prev_rank = ?, prev_rank = ?,
			p2_total = ?, p2_games = ?, p2_gross = ?,
			p1_total = ?, p1_games = ?, p1_gross = ?,
			combined_total = ?, combined_games = ?, combined_gross = ?,
			prior_handicap = ?, delta = ?
		WHERE player_id = ?
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.Handicap, e.Remarks,
			e.PrevPrevRank, e.PrevRank,
			e.Ledger.P2Total, e.Ledger.P2Games, e.Ledger.P2Gross,
			e.Ledger.P1Total, e.Ledger.P1Games, e.Ledger.P1Gross,
			e.Ledger.CombinedTotal, e.Ledger.CombinedGames, e.Ledger.CombinedGross,
			e.Ledger.PriorHandicap, e.Ledger.Delta,
			e.PlayerID,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save ledger row for %s: %w", e.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (s *store) ExternalParticipationDays() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT player_id, days FROM participation_days")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var id string
		var days int
		if err := rows.Scan(&id, &days); err != nil {
			return nil, err
		}
		result[id] = days
	}
	return result, rows.Err()
}

func (s *store) SetParticipationDays(playerID string, days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO participation_days (player_id, days) VALUES (?, ?)
		ON CONFLICT(player_id) DO UPDATE SET days = excluded.days
	`, playerID, days)
	return err
}

func (s *store) PeriodLabel() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var label string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", periodLabelKey).Scan(&label)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return label, nil
}

func (s *store) SetPeriodLabel(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, periodLabelKey, label)
	return err
}
