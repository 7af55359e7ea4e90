package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/baidubce/bce-sdk-go/util"
	"github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	"github.com/stretchr/testify/assert"
)

func TestIndicatorStore(t *testing.T) {
	now := time.Now().UTC()
	indicator := aggregates.Indicator{
		ID:        util.NewUUID(),
		Name:      "sla_current_ratio",
		Objective: 0.99,
		Value:     0.5,
		Bad:       true,
		CreatedAt: now,
	}
	err := TestComponent.AddIndicator(context.Background(), &indicator)
	assert.NoError(t, err)

	old := aggregates.Indicator{
		ID:        util.NewUUID(),
		Name:      "sla_current_ratio",
		Objective: 0.99,
		Value:     1,
		Bad:       false,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	err = TestComponent.AddIndicator(context.Background(), &old)
	assert.NoError(t, err)

	indicators, err := TestComponent.ListIndicators(context.Background(), now.Add(-time.Hour))
	assert.NoError(t, err)
	assert.Len(t, indicators, 1)
	assert.Equal(t, indicator.ID, indicators[0].ID)
	assert.Equal(t, indicator.Name, indicators[0].Name)
	assert.InDelta(t, indicator.Objective, indicators[0].Objective, 0.0001)
	assert.InDelta(t, indicator.Value, indicators[0].Value, 0.0001)
	assert.True(t, indicators[0].Bad)

	all, err := TestComponent.ListIndicators(context.Background(), now.Add(-72*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	deleted, err := TestComponent.CleanIndicators(context.Background(), now.Add(-24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := TestComponent.ListIndicators(context.Background(), now.Add(-72*time.Hour))
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, indicator.ID, remaining[0].ID)
}
