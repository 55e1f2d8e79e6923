package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
	"github.com/couchcryptid/marine-bulletin-etl/internal/observability"
)

// ReportRenderer implements Renderer with the domain formatter, in raw or
// pretty mode for every report kind.
type ReportRenderer struct {
	pretty  bool
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRenderer creates a ReportRenderer.
func NewRenderer(pretty bool, logger *slog.Logger, metrics *observability.Metrics) *ReportRenderer {
	return &ReportRenderer{
		pretty:  pretty,
		logger:  logger,
		metrics: metrics,
	}
}

func (r *ReportRenderer) Render(_ context.Context, report domain.Report) (domain.Rendition, error) {
	out, err := domain.Render(report, r.pretty)
	if err != nil {
		r.metrics.FormatErrors.WithLabelValues(string(report.Kind)).Inc()
		r.logger.Warn("report rendering failed", "kind", report.Kind, "pretty", r.pretty, "error", err)
		return domain.Rendition{}, fmt.Errorf("render %s: %w", report.Kind, err)
	}
	return out, nil
}
