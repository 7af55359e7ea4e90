package config

import (
	"github.com/oncallops/sla-exporter/internal/database"
	"github.com/oncallops/sla-exporter/internal/http"
	"github.com/oncallops/sla-exporter/internal/traces"
	"github.com/oncallops/sla-exporter/pkg/indicator"
	"github.com/oncallops/sla-exporter/pkg/prober"
	"github.com/oncallops/sla-exporter/pkg/sla"
)

type Configuration struct {
	HTTP       http.Configuration
	Database   database.Configuration
	SLA        sla.Configuration
	Indicators indicator.Configuration
	Prober     prober.Configuration
	Tracing    traces.Configuration
}
