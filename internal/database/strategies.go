package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CreateStrategy inserts a strategy into the registry
func (db *DB) CreateStrategy(s *models.Strategy) error {
	query := `
		INSERT INTO strategies (name, description, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`
	now := time.Now()
	err := db.conn.QueryRow(query, s.Name, nullString(s.Description), now).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create strategy: %w", err)
	}
	s.CreatedAt = now
	return nil
}

// GetAllStrategies retrieves the full strategy registry
func (db *DB) GetAllStrategies() ([]*models.Strategy, error) {
	query := `SELECT id, name, description, created_at FROM strategies ORDER BY name ASC`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var strategies []*models.Strategy
	for rows.Next() {
		var s models.Strategy
		var description sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		s.Description = description.String
		strategies = append(strategies, &s)
	}
	return strategies, nil
}

// DeleteStrategy removes a strategy by ID
func (db *DB) DeleteStrategy(id int) error {
	result, err := db.conn.Exec(`DELETE FROM strategies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete strategy: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("strategy not found: %d", id)
	}
	return nil
}
