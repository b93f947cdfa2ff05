package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northridge/backend/internal/config"
	"github.com/northridge/backend/internal/logging"
	"github.com/northridge/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  status      list applied and pending migrations
  down        roll back the most recent migration
  reset       drop every table and recreate from the consolidated schema
  fresh       drop every table and apply all migrations in order`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	dir := findMigrationDir()
	m := &migrator{pool: pool, dir: dir}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		m.up(ctx)
	case "status":
		m.status(ctx)
	case "down":
		m.down(ctx)
	case "reset":
		m.exec(ctx, dropAllFile)
		m.consolidated(ctx)
	case "fresh":
		m.exec(ctx, dropAllFile)
		m.up(ctx)
	default:
		usage()
	}
}

const (
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
	upSuffix         = ".up.sql"
	downSuffix       = ".down.sql"
)

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// migrationNames returns the sorted names (without suffix) of the .up.sql files in dir.
func migrationNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), upSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

// pending returns the names in all that are not in applied, preserving order.
func pending(all []string, applied map[string]bool) []string {
	var out []string
	for _, n := range all {
		if !applied[n] {
			out = append(out, n)
		}
	}
	return out
}

type migrator struct {
	pool *pgxpool.Pool
	dir  string
}

func (m *migrator) names() []string {
	names, err := migrationNames(m.dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "dir", m.dir, "error", err)
	}
	return names
}

func (m *migrator) ensureTable(ctx context.Context) {
	if _, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func (m *migrator) applied(ctx context.Context) map[string]bool {
	m.ensureTable(ctx)
	rows, err := m.pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		logging.Fatal("list applied migrations failed", "error", err)
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logging.Fatal("scan applied migration failed", "error", err)
		}
		out[name] = true
	}
	return out
}

func (m *migrator) exec(ctx context.Context, file string) {
	sql, err := os.ReadFile(filepath.Join(m.dir, file))
	if err != nil {
		logging.Fatal("read migration failed", "file", file, "error", err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("migration failed", "file", file, "error", err)
	}
}

func (m *migrator) up(ctx context.Context) {
	todo := pending(m.names(), m.applied(ctx))
	for _, name := range todo {
		m.exec(ctx, name+upSuffix)
		if _, err := m.pool.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		slog.Info("migration applied", "migration", name)
	}
	if len(todo) == 0 {
		slog.Info("all migrations already applied")
		return
	}
	slog.Info("migrations completed", "count", len(todo))
}

func (m *migrator) down(ctx context.Context) {
	applied := m.applied(ctx)
	names := m.names()
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if !applied[name] {
			continue
		}
		m.exec(ctx, name+downSuffix)
		if _, err := m.pool.Exec(ctx, `DELETE FROM schema_migrations WHERE name = $1`, name); err != nil {
			logging.Fatal("unrecord migration failed", "migration", name, "error", err)
		}
		slog.Info("migration rolled back", "migration", name)
		return
	}
	slog.Info("nothing to roll back")
}

func (m *migrator) status(ctx context.Context) {
	applied := m.applied(ctx)
	for _, name := range m.names() {
		state := "pending"
		if applied[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
}

// consolidated applies the full schema and marks every migration as applied.
func (m *migrator) consolidated(ctx context.Context) {
	m.exec(ctx, consolidatedFile)
	m.ensureTable(ctx)
	names := m.names()
	for _, name := range names {
		if _, err := m.pool.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING`, name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(names))
}
