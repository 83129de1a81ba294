package standings

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmorita/scorebook/internal/ranking"
)

// New creates a new standings store.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) SaveRun(startDate, endDate string, c ranking.Classification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.Exec(`INSERT INTO standing_runs (id, start_date, end_date, threshold, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, startDate, endDate, c.Threshold, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO standings (
			run_id, cohort, rank, player_id, display_name,
			total_points, game_count, gross, handicap, net,
			gross_rank, participation_days, qualified, remarks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(cohort string, rank int, p ranking.RankedPlayer) error {
		_, err := stmt.Exec(
			runID, cohort, nullInt(rank), p.PlayerID, p.DisplayName,
			p.TotalPoints, p.GameCount, p.Gross, p.Handicap, p.Net,
			nullInt(p.GrossRank), p.ParticipationDays, p.Qualified, p.Remarks,
		)
		return err
	}

	for i, p := range c.Qualified {
		if err := insert(CohortMember, i+1, p); err != nil {
			return "", fmt.Errorf("failed to insert standing: %w", err)
		}
	}
	for _, p := range c.Unqualified {
		if err := insert(CohortMember, 0, p); err != nil {
			return "", fmt.Errorf("failed to insert standing: %w", err)
		}
	}
	for _, p := range c.Guests {
		if err := insert(CohortGuest, 0, p); err != nil {
			return "", fmt.Errorf("failed to insert standing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

func (s *store) LatestRun() (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, start_date, end_date, threshold, created_at FROM standing_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	var r Run
	err := row.Scan(&r.ID, &r.StartDate, &r.EndDate, &r.Threshold, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &r, nil
}

func (s *store) Rows(runID string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT run_id, cohort, rank, player_id, display_name,
		       total_points, game_count, gross, handicap, net,
		       gross_rank, participation_days, qualified, remarks
		FROM standings
		WHERE run_id = ?
		ORDER BY cohort DESC, rank IS NULL, rank, net DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var rank, grossRank sql.NullInt64
		err := rows.Scan(
			&r.RunID, &r.Cohort, &rank, &r.PlayerID, &r.DisplayName,
			&r.TotalPoints, &r.GameCount, &r.Gross, &r.Handicap, &r.Net,
			&grossRank, &r.ParticipationDays, &r.Qualified, &r.Remarks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		r.Rank = int(rank.Int64)
		r.GrossRank = int(grossRank.Int64)
		r.IsMember = r.Cohort == CohortMember
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *store) Stats(runID string) (map[string]PeriodStat, error) {
	rows, err := s.Rows(runID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]PeriodStat, len(rows))
	for _, r := range rows {
		out[r.PlayerID] = PeriodStat{
			Total: r.TotalPoints,
			Games: r.GameCount,
			Gross: r.Gross,
			Net:   r.Net,
		}
	}
	return out, nil
}

func (s *store) Top3(runID string) ([]RankEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT rank, player_id FROM standings
		WHERE run_id = ? AND cohort = ? AND rank BETWEEN 1 AND 3
		ORDER BY rank`, runID, CohortMember)
	if err != nil {
		return nil, fmt.Errorf("failed to query top ranks: %w", err)
	}
	defer rows.Close()

	var out []RankEntry
	for rows.Next() {
		var e RankEntry
		if err := rows.Scan(&e.Rank, &e.PlayerID); err != nil {
			return nil, fmt.Errorf("failed to scan rank: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
