package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a project does not exist or belongs to
// another user.
var ErrNotFound = errors.New("not found")

type Project struct {
	ID        int             `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	CreateProject(ctx context.Context, ownerID int, name string, input json.RawMessage) (Project, error)
	ListProjects(ctx context.Context, ownerID int) ([]Project, error)
	GetProject(ctx context.Context, ownerID, id int) (Project, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
	id         SERIAL PRIMARY KEY,
	owner_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	input      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS projects_owner_idx ON projects (owner_id);`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to url, requiring TLS unless the URL chooses an sslmode.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		url = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(url, "sslmode=") {
		if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
			url += "?sslmode=require"
		} else {
			url += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

// Migrate creates the tables if they are missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetBylogin returns the id and password hash; id is 0 for an unknown login.
func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, ownerID int, name string, input json.RawMessage) (Project, error) {
	p := Project{OwnerID: ownerID, Name: name, Input: input}
	query := "INSERT INTO projects (owner_id, name, input) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at"
	err := r.db.QueryRowContext(ctx, query, ownerID, name, []byte(input)).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListProjects(ctx context.Context, ownerID int) ([]Project, error) {
	query := "SELECT id, owner_id, name, input, created_at, updated_at FROM projects WHERE owner_id=$1 ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetProject(ctx context.Context, ownerID, id int) (Project, error) {
	query := "SELECT id, owner_id, name, input, created_at, updated_at FROM projects WHERE id=$1 AND owner_id=$2"
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (Project, error) {
	var p Project
	var raw []byte
	if err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &raw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Project{}, err
	}
	p.Input = json.RawMessage(raw)
	return p, nil
}
