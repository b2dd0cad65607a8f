package library

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SavedRecipe is one archived design.
type SavedRecipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cone        string             `json:"cone"`
	ClayBody    string             `json:"clay_body"`
	Recipe      map[string]float64 `json:"recipe"`
	Additions   map[string]float64 `json:"additions"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Archive provides durable storage for designed recipes.
// Uses SQLite with WAL mode for concurrent read access.
type Archive struct {
	db *sql.DB
}

// OpenArchive creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call on
// an existing database.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to archive: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Save stores a designed recipe and returns its generated id.
func (a *Archive) Save(ctx context.Context, r SavedRecipe) (string, error) {
	if r.Name == "" {
		return "", fmt.Errorf("saved recipe needs a name")
	}
	if len(r.Recipe) == 0 {
		return "", fmt.Errorf("saved recipe needs at least one material")
	}

	recipeJSON, err := json.Marshal(r.Recipe)
	if err != nil {
		return "", fmt.Errorf("encode recipe: %w", err)
	}
	additions := r.Additions
	if additions == nil {
		additions = map[string]float64{}
	}
	additionsJSON, err := json.Marshal(additions)
	if err != nil {
		return "", fmt.Errorf("encode additions: %w", err)
	}

	id := uuid.NewString()
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO designed_recipes (id, name, description, cone, clay_body, recipe_json, additions_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Name, r.Description, r.Cone, r.ClayBody,
		string(recipeJSON), string(additionsJSON), createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

// Get returns one archived recipe by id, or sql.ErrNoRows.
func (a *Archive) Get(ctx context.Context, id string) (*SavedRecipe, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, name, description, cone, clay_body, recipe_json, additions_json, created_at
		FROM designed_recipes WHERE id = ?`, id)
	return scanRecipe(row.Scan)
}

// List returns archived recipes, newest first.
func (a *Archive) List(ctx context.Context) ([]SavedRecipe, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, description, cone, clay_body, recipe_json, additions_json, created_at
		FROM designed_recipes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []SavedRecipe
	for rows.Next() {
		r, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Delete removes an archived recipe. Deleting an unknown id is a no-op.
func (a *Archive) Delete(ctx context.Context, id string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM designed_recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func scanRecipe(scan func(...any) error) (*SavedRecipe, error) {
	var r SavedRecipe
	var recipeJSON, additionsJSON, createdAt string
	if err := scan(&r.ID, &r.Name, &r.Description, &r.Cone, &r.ClayBody, &recipeJSON, &additionsJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recipeJSON), &r.Recipe); err != nil {
		return nil, fmt.Errorf("decode recipe json: %w", err)
	}
	if err := json.Unmarshal([]byte(additionsJSON), &r.Additions); err != nil {
		return nil, fmt.Errorf("decode additions json: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	r.CreatedAt = ts
	return &r, nil
}
