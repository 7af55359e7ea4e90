package handlers

import (
	"context"
	"time"

	indicatoraggregates "github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	"github.com/oncallops/sla-exporter/pkg/sla/aggregates"
)

type SLAService interface {
	Status() aggregates.Status
}

type IndicatorService interface {
	ListIndicators(ctx context.Context, threshold time.Time) ([]*indicatoraggregates.Indicator, error)
}

type Builder struct {
	sla       SLAService
	indicator IndicatorService
}

func NewBuilder(sla SLAService, indicator IndicatorService) *Builder {
	return &Builder{
		sla:       sla,
		indicator: indicator,
	}
}
