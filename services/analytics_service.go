package services

import (
	"context"
	"math"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/analytics"
)

const (
	DefaultStartDate = "30daysAgo"
	DefaultEndDate   = "today"
)

var reportDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d+daysAgo|today|yesterday)$`)

// AnalyticsService shapes GA4 reports into flat records for the dashboard
type AnalyticsService struct {
	provider *analytics.Provider
	logger   hclog.Logger
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(provider *analytics.Provider, logger hclog.Logger) *AnalyticsService {
	return &AnalyticsService{
		provider: provider,
		logger:   logger.Named("analytics"),
	}
}

// Realtime returns the users active in the last minutes
func (s *AnalyticsService) Realtime(ctx context.Context) (dto.RealtimeReport, error) {
	client, err := s.provider.Client()
	if err != nil {
		return dto.RealtimeReport{}, err
	}

	report, err := client.RunRealtimeReport(ctx, &analytics.ReportRequest{
		Metrics: analytics.Metrics("activeUsers"),
	})
	if err != nil {
		return dto.RealtimeReport{}, s.queryFailed("realtime", err)
	}

	return dto.RealtimeReport{ActiveUsers: int64(firstMetric(report, 0))}, nil
}

// Overview returns headline totals for the date range
func (s *AnalyticsService) Overview(ctx context.Context, q dto.ReportQuery) (dto.OverviewReport, error) {
	report, err := s.run(ctx, "overview", q, analytics.ReportRequest{
		Metrics: analytics.Metrics(
			"totalUsers",
			"sessions",
			"screenPageViews",
			"bounceRate",
			"averageSessionDuration",
			"engagedSessions",
			"newUsers",
		),
	})
	if err != nil {
		return dto.OverviewReport{}, err
	}

	return dto.OverviewReport{
		TotalUsers:         firstMetric(report, 0),
		Sessions:           firstMetric(report, 1),
		PageViews:          firstMetric(report, 2),
		BounceRate:         round2(firstMetric(report, 3) * 100),
		AvgSessionDuration: firstMetric(report, 4),
		EngagedSessions:    firstMetric(report, 5),
		NewUsers:           firstMetric(report, 6),
	}, nil
}

// Pages returns the most viewed pages
func (s *AnalyticsService) Pages(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "pages", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("pagePath", "pageTitle"),
		Metrics:    analytics.Metrics("screenPageViews", "totalUsers", "averageSessionDuration"),
		OrderBys:   byMetricDesc("screenPageViews"),
		Limit:      limitOr(q.Limit, 20),
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"pagePath", "pageTitle"}, []string{"pageViews", "users", "avgDuration"}), nil
}

// TrafficSources returns sessions per default channel group
func (s *AnalyticsService) TrafficSources(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "traffic-sources", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("sessionDefaultChannelGroup"),
		Metrics:    analytics.Metrics("sessions", "totalUsers"),
		OrderBys:   byMetricDesc("sessions"),
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"channel"}, []string{"sessions", "users"}), nil
}

// Countries returns users per country
func (s *AnalyticsService) Countries(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "countries", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("country"),
		Metrics:    analytics.Metrics("totalUsers", "sessions"),
		OrderBys:   byMetricDesc("totalUsers"),
		Limit:      limitOr(q.Limit, 20),
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"country"}, []string{"users", "sessions"}), nil
}

// Devices returns users per device category
func (s *AnalyticsService) Devices(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "devices", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("deviceCategory"),
		Metrics:    analytics.Metrics("totalUsers", "sessions"),
		OrderBys:   byMetricDesc("totalUsers"),
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"device"}, []string{"users", "sessions"}), nil
}

// Events returns the most frequent events
func (s *AnalyticsService) Events(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "events", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("eventName"),
		Metrics:    analytics.Metrics("eventCount", "totalUsers"),
		OrderBys:   byMetricDesc("eventCount"),
		Limit:      limitOr(q.Limit, 30),
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"eventName"}, []string{"eventCount", "users"}), nil
}

// ContactClicks relates events named like contact or cta to total sessions
func (s *AnalyticsService) ContactClicks(ctx context.Context, q dto.ReportQuery) (dto.ContactClickReport, error) {
	totals, err := s.run(ctx, "contact-clicks", q, analytics.ReportRequest{
		Metrics: analytics.Metrics("sessions"),
	})
	if err != nil {
		return dto.ContactClickReport{}, err
	}

	clicks, err := s.run(ctx, "contact-clicks", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("eventName"),
		Metrics:    analytics.Metrics("eventCount"),
		DimensionFilter: analytics.AnyOf(
			analytics.Contains("eventName", "contact"),
			analytics.Contains("eventName", "cta"),
		),
	})
	if err != nil {
		return dto.ContactClickReport{}, err
	}

	events := records(clicks, []string{"eventName"}, []string{"eventCount"})
	result := dto.ContactClickReport{
		TotalSessions: firstMetric(totals, 0),
		Events:        events,
	}
	for _, row := range clicks.Rows {
		result.TotalContactClicks += metricAt(row, 0)
	}
	if result.TotalSessions > 0 {
		result.ClickRate = round2(result.TotalContactClicks / result.TotalSessions * 100)
	}
	return result, nil
}

// DailyTrend returns users, sessions and page views per day in date order
func (s *AnalyticsService) DailyTrend(ctx context.Context, q dto.ReportQuery) ([]dto.ReportRecord, error) {
	report, err := s.run(ctx, "daily-trend", q, analytics.ReportRequest{
		Dimensions: analytics.Dimensions("date"),
		Metrics:    analytics.Metrics("totalUsers", "sessions", "screenPageViews"),
		OrderBys:   []*analytics.OrderBy{{Dimension: &analytics.DimensionOrderBy{DimensionName: "date"}}},
	})
	if err != nil {
		return nil, err
	}
	return records(report, []string{"date"}, []string{"users", "sessions", "pageViews"}), nil
}

// NormalizeReportQuery fills in the default range and rejects malformed dates
func NormalizeReportQuery(q dto.ReportQuery) (dto.ReportQuery, error) {
	if q.StartDate == "" {
		q.StartDate = DefaultStartDate
	}
	if q.EndDate == "" {
		q.EndDate = DefaultEndDate
	}
	for _, d := range []string{q.StartDate, q.EndDate} {
		if !reportDatePattern.MatchString(d) {
			return q, validationErrorf("Invalid date %q: use YYYY-MM-DD, NdaysAgo, today or yesterday", d)
		}
	}
	if q.Limit < 0 {
		q.Limit = 0
	}
	return q, nil
}

func (s *AnalyticsService) run(ctx context.Context, name string, q dto.ReportQuery, req analytics.ReportRequest) (*analytics.Report, error) {
	q, err := NormalizeReportQuery(q)
	if err != nil {
		return nil, err
	}

	client, err := s.provider.Client()
	if err != nil {
		return nil, err
	}

	req.DateRanges = []*analytics.DateRange{{StartDate: q.StartDate, EndDate: q.EndDate}}
	report, err := client.RunReport(ctx, &req)
	if err != nil {
		return nil, s.queryFailed(name, err)
	}
	return report, nil
}

func (s *AnalyticsService) queryFailed(name string, err error) error {
	s.logger.Error("analytics query failed", "report", name, "error", err)
	return err
}

func byMetricDesc(metric string) []*analytics.OrderBy {
	return []*analytics.OrderBy{{Metric: &analytics.MetricOrderBy{MetricName: metric}, Desc: true}}
}

func limitOr(limit, fallback int64) int64 {
	if limit > 0 {
		return limit
	}
	return fallback
}

// records flattens report rows into maps keyed by the given names; metric
// values become numbers
func records(report *analytics.Report, dimNames, metricNames []string) []dto.ReportRecord {
	out := make([]dto.ReportRecord, 0, len(report.Rows))
	for _, row := range report.Rows {
		rec := dto.ReportRecord{}
		for i, v := range row.Dimensions {
			if i < len(dimNames) {
				rec[dimNames[i]] = v
			}
		}
		for i := range row.Metrics {
			if i < len(metricNames) {
				rec[metricNames[i]] = metricAt(row, i)
			}
		}
		out = append(out, rec)
	}
	return out
}

func firstMetric(report *analytics.Report, i int) float64 {
	if len(report.Rows) == 0 {
		return 0
	}
	return metricAt(report.Rows[0], i)
}

func metricAt(row analytics.Row, i int) float64 {
	if i >= len(row.Metrics) {
		return 0
	}
	v, err := strconv.ParseFloat(row.Metrics[i], 64)
	if err != nil {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
