package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/lib/analytics"
	"github.com/opsvix-api/services"
)

// AnalyticsController exposes the GA4 reports to the dashboard
type AnalyticsController struct {
	responder
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService *services.AnalyticsService, r responder) *AnalyticsController {
	return &AnalyticsController{responder: r, analyticsService: analyticsService}
}

// RegisterRoutes registers analytics routes, all of them guarded
func (ac *AnalyticsController) RegisterRoutes(router *gin.RouterGroup, guard ...gin.HandlerFunc) {
	reports := router.Group("/analytics", guard...)
	{
		reports.GET("/realtime", ac.Realtime)
		reports.GET("/overview", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.Overview(ctx, q)
		}))
		reports.GET("/pages", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.Pages(ctx, q)
		}))
		reports.GET("/traffic-sources", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.TrafficSources(ctx, q)
		}))
		reports.GET("/countries", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.Countries(ctx, q)
		}))
		reports.GET("/devices", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.Devices(ctx, q)
		}))
		reports.GET("/events", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.Events(ctx, q)
		}))
		reports.GET("/contact-clicks", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.ContactClicks(ctx, q)
		}))
		reports.GET("/daily-trend", ac.report(func(ctx context.Context, q dto.ReportQuery) (interface{}, error) {
			return ac.analyticsService.DailyTrend(ctx, q)
		}))
	}
}

// Realtime returns the users active right now
func (ac *AnalyticsController) Realtime(c *gin.Context) {
	report, err := ac.analyticsService.Realtime(c.Request.Context())
	if err != nil {
		ac.failReport(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(report))
}

func (ac *AnalyticsController) report(run func(context.Context, dto.ReportQuery) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := run(c.Request.Context(), reportQuery(c))
		if err != nil {
			ac.failReport(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(data))
	}
}

// failReport reports every error that is neither bad input nor missing
// configuration as a failed query
func (ac *AnalyticsController) failReport(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		query      *analytics.QueryError
	)
	if errors.As(err, &validation) || errors.As(err, &query) || errors.Is(err, analytics.ErrNotConfigured) {
		ac.fail(c, err)
		return
	}

	ac.logger.Error("analytics query failed", "path", c.Request.URL.Path, "error", err)
	resp := dto.Fail(err.Error())
	resp.Code = CodeAnalyticsQueryFailed
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// reportQuery reads the shared query parameters; a limit that is not a
// positive integer falls back to the report's default
func reportQuery(c *gin.Context) dto.ReportQuery {
	q := dto.ReportQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		q.Limit = limit
	}
	return q
}
