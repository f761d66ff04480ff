package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const matchTableName = "matches"

// MatchHistoryService keeps finished matches in a sqlite file.
type MatchHistoryService struct {
	db *sql.DB
}

type MatchRecord struct {
	ID         string
	Mode       string // "singleplayer", "host", "join", "online"
	PlayerRole Role
	Winner     Role
	Rounds     int
	ItemsFound int
	CreatedAt  time.Time
}

func (r MatchRecord) Won() bool {
	return r.PlayerRole == r.Winner
}

func NewMatchHistoryService(dbPath string) (*MatchHistoryService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open match history %s: %w", dbPath, err)
	}

	service := &MatchHistoryService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return service, nil
}

func (serviceImpl *MatchHistoryService) Close() error {
	return serviceImpl.db.Close()
}

// createTable creates the matches table if it does not exist.
func (serviceImpl *MatchHistoryService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + matchTableName + ` (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		player_role TEXT NOT NULL,
		winner TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		items_found INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := serviceImpl.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Match history table ensured.")
	return nil
}

// SaveMatch stores a finished match, filling in the ID and timestamp when missing.
func (serviceImpl *MatchHistoryService) SaveMatch(record MatchRecord) (MatchRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	const insertSQL = `
	INSERT INTO ` + matchTableName + ` (id, mode, player_role, winner, rounds, items_found, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL,
		record.ID,
		record.Mode,
		record.PlayerRole.String(),
		record.Winner.String(),
		record.Rounds,
		record.ItemsFound,
		record.CreatedAt,
	)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("failed to insert match %s: %w", record.ID, err)
	}
	return record, nil
}

// GetMatches retrieves a page of matches, newest first.
func (serviceImpl *MatchHistoryService) GetMatches(limit, offset int) ([]MatchRecord, error) {
	const selectSQL = `
	SELECT id, mode, player_role, winner, rounds, items_found, created_at
	FROM ` + matchTableName + `
	ORDER BY created_at DESC, id
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var (
			record             MatchRecord
			playerRole, winner string
		)
		if err := rows.Scan(&record.ID, &record.Mode, &playerRole, &winner,
			&record.Rounds, &record.ItemsFound, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := record.PlayerRole.UnmarshalText([]byte(playerRole)); err != nil {
			return nil, fmt.Errorf("match %s: %w", record.ID, err)
		}
		if err := record.Winner.UnmarshalText([]byte(winner)); err != nil {
			return nil, fmt.Errorf("match %s: %w", record.ID, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return records, nil
}

func (serviceImpl *MatchHistoryService) GetTotalMatchCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + matchTableName + `;`
	var count int
	if err := serviceImpl.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total match count: %w", err)
	}
	return count, nil
}

// GetWinCounts returns how many recorded matches each role won.
func (serviceImpl *MatchHistoryService) GetWinCounts() (map[Role]int, error) {
	const countSQL = `SELECT winner, COUNT(*) FROM ` + matchTableName + ` GROUP BY winner;`
	rows, err := serviceImpl.db.Query(countSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}
	defer rows.Close()

	counts := map[Role]int{Killer: 0, Victim: 0}
	for rows.Next() {
		var (
			winner string
			count  int
			role   Role
		)
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := role.UnmarshalText([]byte(winner)); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}
