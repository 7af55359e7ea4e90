package indicator

import (
	"context"
	"fmt"
	"time"

	"github.com/oncallops/sla-exporter/internal/util"
	"github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
	er "github.com/mcorbin/corbierror"
	"github.com/prometheus/client_golang/prometheus"
)

func InitIndicator(indicator *aggregates.Indicator) {
	indicator.ID = util.NewUUID()
	indicator.CreatedAt = time.Now().UTC()
}

func (s *Service) AddIndicator(ctx context.Context, indicator *aggregates.Indicator) error {
	if indicator.Name == "" {
		return er.New("missing indicator name", er.BadRequest, true)
	}
	InitIndicator(indicator)
	s.logger.Debug(fmt.Sprintf("saving indicator %s value %f objective %f bad %t", indicator.Name, indicator.Value, indicator.Objective, indicator.Bad))
	return s.store.AddIndicator(ctx, indicator)
}

func (s *Service) ListIndicators(ctx context.Context, threshold time.Time) ([]*aggregates.Indicator, error) {
	return s.store.ListIndicators(ctx, threshold)
}

func (s *Service) CleanIndicators(ctx context.Context) {
	threshold := time.Now().UTC().Add(-s.retention)
	deleted, err := s.store.CleanIndicators(ctx, threshold)
	if err != nil {
		s.logger.Error(fmt.Sprintf("fail to clean old indicators: %s", err.Error()))
		s.cleanupExecutionsCounter.With(prometheus.Labels{"status": "failure"}).Inc()
		return
	}
	if deleted > 0 {
		s.logger.Info(fmt.Sprintf("removed %d indicators older than %s", deleted, threshold.Format(time.RFC3339)))
	}
	s.cleanupExecutionsCounter.With(prometheus.Labels{"status": "success"}).Inc()
}
