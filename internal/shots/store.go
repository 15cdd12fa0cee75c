package shots

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ShotStore persists cleaned shot records and roster membership in sqlite.
// It implements both Source and RosterResolver. The store is the "data
// source" collaborator from the estimation contract: every record it yields
// has already passed upstream cleaning, so coordinates and probabilities are
// in range by construction.
type ShotStore struct {
	db *sql.DB
}

// OpenStore opens (or creates) the sqlite database at path and applies any
// pending schema migrations.
func OpenStore(path string) (*ShotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	s := &ShotStore{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *ShotStore) Close() error { return s.db.Close() }

// DB exposes the underlying handle for ad-hoc queries in tooling and tests.
func (s *ShotStore) DB() *sql.DB { return s.db }

// InsertShots writes a batch of records in one transaction. Each row gets a
// fresh UUID; callers never supply identifiers.
func (s *ShotStore) InsertShots(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert shots: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shots (shot_id, season, shooter, team, x, y, x_goal, goal, distance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert shots: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		goal := 0
		if r.Goal {
			goal = 1
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), r.Season, r.Shooter, r.Team,
			r.X, r.Y, r.XGoal, goal, r.Distance,
		); err != nil {
			return fmt.Errorf("insert shot for %q: %w", r.Shooter, err)
		}
	}
	return tx.Commit()
}

// AllShots returns every record for the season, oldest insert first.
func (s *ShotStore) AllShots(ctx context.Context, season int) ([]Record, error) {
	return s.queryShots(ctx, `
		SELECT season, shooter, team, x, y, x_goal, goal, distance
		FROM shots WHERE season = ? ORDER BY rowid`, season)
}

// ShotsForShooter returns the season's records for one shooter.
func (s *ShotStore) ShotsForShooter(ctx context.Context, season int, shooter string) ([]Record, error) {
	return s.queryShots(ctx, `
		SELECT season, shooter, team, x, y, x_goal, goal, distance
		FROM shots WHERE season = ? AND shooter = ? ORDER BY rowid`, season, shooter)
}

// ShooterKnown reports whether the shooter has any record in any season.
func (s *ShotStore) ShooterKnown(ctx context.Context, shooter string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shots WHERE shooter = ?`, shooter).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count shots for %q: %w", shooter, err)
	}
	return n > 0, nil
}

// Roster returns the shooters on a team, alphabetically. An unknown team
// returns an empty slice; the aggregation layer turns that into EmptyScope.
func (s *ShotStore) Roster(ctx context.Context, team string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT shooter FROM rosters WHERE team = ? ORDER BY shooter`, team)
	if err != nil {
		return nil, fmt.Errorf("query roster for %q: %w", team, err)
	}
	defer rows.Close()

	var roster []string
	for rows.Next() {
		var shooter string
		if err := rows.Scan(&shooter); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, shooter)
	}
	return roster, rows.Err()
}

// ReplaceRoster atomically swaps a team's roster for the given shooters.
func (s *ShotStore) ReplaceRoster(ctx context.Context, team string, shooters []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace roster: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rosters WHERE team = ?`, team); err != nil {
		return fmt.Errorf("clear roster for %q: %w", team, err)
	}
	for _, shooter := range shooters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rosters (team, shooter) VALUES (?, ?)`, team, shooter); err != nil {
			return fmt.Errorf("insert roster row %q/%q: %w", team, shooter, err)
		}
	}
	return tx.Commit()
}

func (s *ShotStore) queryShots(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var goal int
		if err := rows.Scan(&r.Season, &r.Shooter, &r.Team, &r.X, &r.Y, &r.XGoal, &goal, &r.Distance); err != nil {
			return nil, fmt.Errorf("scan shot row: %w", err)
		}
		r.Goal = goal != 0
		records = append(records, r)
	}
	return records, rows.Err()
}
