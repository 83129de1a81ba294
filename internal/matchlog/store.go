package matchlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new match log store.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Append(records []MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_log (game_date, game_no, player_id, partner_id, points, slot, committed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range records {
		committedAt := r.CommittedAt
		if committedAt == 0 {
			committedAt = now
		}
		if _, err := stmt.Exec(r.Date, r.GameNumber, r.PlayerID, r.PartnerID, r.Points, r.Slot, committedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to append record for player %s: %w", r.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Appended match records", "count", len(records))
	return nil
}

func (s *store) QueryRange(start, end string) ([]MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT game_date, game_no, player_id, partner_id, points, slot, committed_at
		FROM match_log
		WHERE game_date >= ? AND game_date <= ?
		ORDER BY game_date, game_no, slot
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var partner sql.NullString
		if err := rows.Scan(&r.Date, &r.GameNumber, &r.PlayerID, &partner, &r.Points, &r.Slot, &r.CommittedAt); err != nil {
			log.Error("Failed to scan match record row", "error", err)
			continue
		}
		r.PartnerID = partner.String
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *store) MaxGameNumber(date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(game_no) FROM match_log WHERE game_date = ?", date).Scan(&max)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return int(max.Int64), nil
}

func (s *store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM match_log").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
