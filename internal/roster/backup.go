package roster

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// CreateBackup snapshots the current roster state (entries plus period
// label) under baseName. When the name is taken, (1), (2), ... is appended
// until a free one is found, mirroring how the original kept sheet copies.
func (s *store) CreateBackup(baseName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.allLocked()
	if err != nil {
		return "", fmt.Errorf("failed to read roster for backup: %w", err)
	}

	var label string
	if err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", periodLabelKey).Scan(&label); err != nil {
		label = "" // cold start, no label recorded yet
	}

	blob, err := msgpack.Marshal(Snapshot{PeriodLabel: label, Entries: entries})
	if err != nil {
		return "", fmt.Errorf("failed to marshal roster snapshot: %w", err)
	}

	name := baseName
	for counter := 1; ; counter++ {
		var exists bool
		err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM ledger_backups WHERE name = ?)", name).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		name = fmt.Sprintf("%s(%d)", baseName, counter)
	}

	_, err = s.db.Exec(
		"INSERT INTO ledger_backups (name, created_at, snapshot) VALUES (?, ?, ?)",
		name, time.Now().Unix(), blob,
	)
	if err != nil {
		return "", fmt.Errorf("failed to store backup %s: %w", name, err)
	}

	log.Info("Created roster ledger backup", "name", name, "entries", len(entries))
	return name, nil
}

func (s *store) ListBackups() ([]BackupInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name, created_at FROM ledger_backups ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var backups []BackupInfo
	for rows.Next() {
		var b BackupInfo
		if err := rows.Scan(&b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

func (s *store) LoadBackup(name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	if err := s.db.QueryRow("SELECT snapshot FROM ledger_backups WHERE name = ?", name).Scan(&blob); err != nil {
		return nil, fmt.Errorf("backup %s not found: %w", name, err)
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup %s: %w", name, err)
	}
	return &snap, nil
}
