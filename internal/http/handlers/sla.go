package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
	indicatoraggregates "github.com/oncallops/sla-exporter/pkg/indicator/aggregates"
)

const defaultIndicatorsRange = 24 * time.Hour

type ListIndicatorsInput struct {
	Since string `query:"since"`
}

type ListIndicatorsOutput struct {
	Result []*indicatoraggregates.Indicator `json:"result"`
}

func (b *Builder) SLAStatus(ec echo.Context) error {
	return ec.JSON(http.StatusOK, b.sla.Status())
}

func (b *Builder) ListIndicators(ec echo.Context) error {
	var payload ListIndicatorsInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	indicatorsRange := defaultIndicatorsRange
	if payload.Since != "" {
		parsed, err := time.ParseDuration(payload.Since)
		if err != nil {
			return er.Newf("invalid since parameter %s", er.BadRequest, true, payload.Since)
		}
		indicatorsRange = parsed
	}
	threshold := time.Now().UTC().Add(-indicatorsRange)
	indicators, err := b.indicator.ListIndicators(ec.Request().Context(), threshold)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, ListIndicatorsOutput{
		Result: indicators,
	})
}
