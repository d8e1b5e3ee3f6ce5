package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	valid INTEGER NOT NULL,
	impact_time REAL NOT NULL,
	impact_x REAL NOT NULL,
	impact_y REAL NOT NULL,
	impact_z REAL NOT NULL,
	samples INTEGER NOT NULL,
	trajectory TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *SQLiteStore) SavePrediction(ctx context.Context, prediction *StoredPrediction) error {
	if prediction == nil {
		return fmt.Errorf("prediction is nil")
	}
	if prediction.ID == "" {
		return fmt.Errorf("prediction ID is empty")
	}

	trajectory, err := json.Marshal(prediction.Trajectory)
	if err != nil {
		return fmt.Errorf("failed to marshal trajectory: %v", err)
	}

	q := `
	INSERT OR REPLACE INTO predictions (id, kind, created_at, valid, impact_time, impact_x, impact_y, impact_z, samples, trajectory)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.db.ExecContext(ctx, q,
		prediction.ID,
		prediction.Kind,
		prediction.CreatedAt.UnixMilli(),
		prediction.Valid,
		prediction.ImpactTime,
		prediction.ImpactPosition.X,
		prediction.ImpactPosition.Y,
		prediction.ImpactPosition.Z,
		prediction.Samples,
		string(trajectory),
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %v", err)
	}

	return nil
}

func (s *SQLiteStore) GetPrediction(ctx context.Context, id string) (*StoredPrediction, error) {
	q := `
	SELECT id, kind, created_at, valid, impact_time, impact_x, impact_y, impact_z, samples, trajectory
	FROM predictions WHERE id = ?;
	`
	prediction, err := scanPrediction(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan prediction: %v", err)
	}
	return prediction, nil
}

func (s *SQLiteStore) ListPredictions(ctx context.Context, limit int) ([]*StoredPrediction, error) {
	if limit <= 0 {
		limit = -1
	}
	q := `
	SELECT id, kind, created_at, valid, impact_time, impact_x, impact_y, impact_z, samples, trajectory
	FROM predictions ORDER BY created_at DESC LIMIT ?;
	`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %v", err)
	}
	defer rows.Close()

	var predictions []*StoredPrediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %v", err)
		}
		predictions = append(predictions, prediction)
	}
	return predictions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrediction(row rowScanner) (*StoredPrediction, error) {
	var p StoredPrediction
	var createdAt int64
	var trajectory string
	if err := row.Scan(&p.ID, &p.Kind, &createdAt, &p.Valid, &p.ImpactTime,
		&p.ImpactPosition.X, &p.ImpactPosition.Y, &p.ImpactPosition.Z,
		&p.Samples, &trajectory); err != nil {
		return nil, err
	}
	p.CreatedAt = time.UnixMilli(createdAt)
	if trajectory != "" {
		if err := json.Unmarshal([]byte(trajectory), &p.Trajectory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trajectory: %v", err)
		}
	}
	return &p, nil
}
