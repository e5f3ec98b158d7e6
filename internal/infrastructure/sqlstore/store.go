package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"memo-go/internal/game"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

type saveRow struct {
	Joueur      string `db:"joueur"`
	Level       int    `db:"level"`
	Mode        string `db:"mode"`
	Points      int    `db:"points"`
	LevelPoints int    `db:"level_points"`
	Overlay     string `db:"overlay"`
	Solution    string `db:"solution"`
}

const selectSaves = `
	SELECT joueur, level, mode, points, level_points, overlay, solution
	FROM saves
	ORDER BY position`

// Store keeps one save per player name in a SQL table.
type Store struct {
	db *sqlx.DB
}

// Open connects with driver (sqlite3 or postgres) and brings the schema up to date.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	if err := migrateUp(driver, dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db}, nil
}

func migrateUp(driver, dsn string) error {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s for migrations: %w", driver, err)
	}

	var target database.Driver
	switch driver {
	case DriverPostgres:
		target, err = postgres.WithInstance(conn, &postgres.Config{})
	default:
		target, err = sqlite3.WithInstance(conn, &sqlite3.Config{})
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		target.Close()
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		src.Close()
		target.Close()
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Upsert overwrites the save with the same player name, or appends a new one.
func (s *Store) Upsert(ctx context.Context, snap game.Snapshot) error {
	overlay, err := json.Marshal(snap.Tables)
	if err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}
	solution := ""
	if len(snap.Solution) > 0 {
		data, err := json.Marshal(snap.Solution)
		if err != nil {
			return fmt.Errorf("failed to encode solution: %w", err)
		}
		solution = string(data)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var id string
	err = tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM saves WHERE joueur = ?`), snap.Joueur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO saves (id, joueur, level, mode, points, level_points, overlay, solution, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM saves), ?, ?)`),
			uuid.New().String(), snap.Joueur, snap.Level, snap.Mode, snap.Points, snap.LevelPoints,
			string(overlay), solution, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert save: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up save: %w", err)
	default:
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE saves
			SET level = ?, mode = ?, points = ?, level_points = ?, overlay = ?, solution = ?, updated_at = ?
			WHERE id = ?`),
			snap.Level, snap.Mode, snap.Points, snap.LevelPoints, string(overlay), solution, now, id)
		if err != nil {
			return fmt.Errorf("failed to update save: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// List returns every save in the order players first saved.
func (s *Store) List(ctx context.Context) ([]game.Snapshot, error) {
	var rows []saveRow
	if err := s.db.SelectContext(ctx, &rows, selectSaves); err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	saves := make([]game.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := row.snapshot()
		if err != nil {
			return nil, err
		}
		saves = append(saves, snap)
	}
	return saves, nil
}

func (s *Store) GetByIndex(ctx context.Context, index int) (game.Snapshot, error) {
	if index < 0 {
		return game.Snapshot{}, game.ErrSaveNotFound
	}

	var row saveRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(selectSaves+" LIMIT 1 OFFSET ?"), index)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, game.ErrSaveNotFound
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get save %d: %w", index, err)
	}
	return row.snapshot()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (r saveRow) snapshot() (game.Snapshot, error) {
	snap := game.Snapshot{
		Joueur:      r.Joueur,
		Level:       r.Level,
		Mode:        r.Mode,
		Points:      r.Points,
		LevelPoints: r.LevelPoints,
	}
	if err := json.Unmarshal([]byte(r.Overlay), &snap.Tables); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %s: grid: %v", game.ErrCorruptSnapshot, r.Joueur, err)
	}
	if r.Solution != "" {
		if err := json.Unmarshal([]byte(r.Solution), &snap.Solution); err != nil {
			return game.Snapshot{}, fmt.Errorf("%w: %s: solution: %v", game.ErrCorruptSnapshot, r.Joueur, err)
		}
	}
	return snap, nil
}
