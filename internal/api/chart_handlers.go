package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/vytor/trainerdesk/internal/logger"
)

// handleStatisticsChart renders the client's statistics as an HTML page with
// one line chart per metric.
func (s *Server) handleStatisticsChart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	stats, err := s.ProgressService.Statistics(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	view := s.statisticsView(languageFromContext(r.Context()), stats)

	page := components.NewPage()
	page.PageTitle = s.translate(languageFromContext(r.Context()), "clientStatistics")
	if len(view.Series) == 0 {
		page.AddCharts(emptyChart(view.Message))
	}
	for _, sv := range view.Series {
		page.AddCharts(metricChart(sv))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		log.Error("failed to render chart: %v", err)
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func metricChart(sv seriesView) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    sv.Label,
			Subtitle: sv.Notice,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)
	if sv.InsufficientData {
		return line
	}

	items := make([]opts.LineData, 0, len(sv.Points))
	for _, p := range sv.Points {
		items = append(items, opts.LineData{Value: p})
	}
	line.SetXAxis(sv.Labels).AddSeries(sv.Label, items)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func emptyChart(message string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{Title: message}),
	)
	return line
}
