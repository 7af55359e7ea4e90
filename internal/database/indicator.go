package database

import (
	"context"
	"fmt"
	"time"

	"github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
)

type dbIndicator struct {
	ID        string
	Name      string
	Objective float64
	Value     float64
	Bad       bool
	CreatedAt time.Time `db:"created_at"`
}

func (c *Database) AddIndicator(ctx context.Context, indicator *aggregates.Indicator) error {
	data := dbIndicator{
		ID:        indicator.ID,
		Name:      indicator.Name,
		Objective: indicator.Objective,
		Value:     indicator.Value,
		Bad:       indicator.Bad,
		CreatedAt: indicator.CreatedAt,
	}
	result, err := c.db.NamedExecContext(ctx, "INSERT INTO indicator (id, name, objective, value, bad, created_at) VALUES (:id, :name, :objective, :value, :bad, :created_at)", data)
	if err != nil {
		return fmt.Errorf("fail to save indicator %s: %w", data.Name, err)
	}
	return checkResult(result, 1)
}

func (c *Database) ListIndicators(ctx context.Context, threshold time.Time) ([]*aggregates.Indicator, error) {
	dbIndicators := []dbIndicator{}
	err := c.db.SelectContext(ctx, &dbIndicators, "SELECT id, name, objective, value, bad, created_at FROM indicator WHERE created_at > $1 ORDER BY created_at DESC", threshold)
	if err != nil {
		return nil, fmt.Errorf("fail to list indicators: %w", err)
	}
	result := []*aggregates.Indicator{}
	for i := range dbIndicators {
		dbIndicator := dbIndicators[i]
		result = append(result, &aggregates.Indicator{
			ID:        dbIndicator.ID,
			Name:      dbIndicator.Name,
			Objective: dbIndicator.Objective,
			Value:     dbIndicator.Value,
			Bad:       dbIndicator.Bad,
			CreatedAt: dbIndicator.CreatedAt,
		})
	}
	return result, nil
}

func (c *Database) CleanIndicators(ctx context.Context, threshold time.Time) (int64, error) {
	result, err := c.db.ExecContext(ctx, "DELETE FROM indicator WHERE created_at < $1", threshold)
	if err != nil {
		return 0, fmt.Errorf("fail to clean indicators: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("fail to check deleted indicators: %w", err)
	}
	return deleted, nil
}
