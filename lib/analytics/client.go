package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultBaseURL is the GA4 Data API endpoint
const DefaultBaseURL = "https://analyticsdata.googleapis.com/"

// QueryError is a report query rejected by the Data API
type QueryError struct {
	StatusCode int
	Message    string
}

func (e *QueryError) Error() string {
	return e.Message
}

// Client runs reports against a single GA4 property
type Client struct {
	service    *analyticsdata.Service
	propertyID string
}

// NewClient creates a client. httpClient must attach credentials itself.
func NewClient(ctx context.Context, httpClient *http.Client, baseURL, propertyID string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	service, err := analyticsdata.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(strings.TrimRight(baseURL, "/")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data service: %w", err)
	}
	return &Client{service: service, propertyID: propertyID}, nil
}

// PropertyID returns the GA4 property the client reports on
func (c *Client) PropertyID() string {
	return c.propertyID
}

// RunReport runs a report over the request's date ranges
func (c *Client) RunReport(ctx context.Context, req *ReportRequest) (*Report, error) {
	resp, err := c.service.Properties.RunReport(c.property(), req).Context(ctx).Do()
	if err != nil {
		return nil, queryError(err)
	}
	return newReport(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows), nil
}

// RunRealtimeReport runs a report over the last minutes of activity.
// Date ranges on req are ignored.
func (c *Client) RunRealtimeReport(ctx context.Context, req *ReportRequest) (*Report, error) {
	realtime := &analyticsdata.RunRealtimeReportRequest{
		Dimensions:      req.Dimensions,
		Metrics:         req.Metrics,
		DimensionFilter: req.DimensionFilter,
		OrderBys:        req.OrderBys,
		Limit:           req.Limit,
	}
	resp, err := c.service.Properties.RunRealtimeReport(c.property(), realtime).Context(ctx).Do()
	if err != nil {
		return nil, queryError(err)
	}
	return newReport(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows), nil
}

func (c *Client) property() string {
	return "properties/" + c.propertyID
}

func queryError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("analytics request failed: %w", err)
	}
	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.Code)
	}
	return &QueryError{StatusCode: apiErr.Code, Message: msg}
}

func newReport(dims []*analyticsdata.DimensionHeader, metrics []*analyticsdata.MetricHeader, rows []*analyticsdata.Row) *Report {
	report := &Report{
		DimensionHeaders: make([]string, 0, len(dims)),
		MetricHeaders:    make([]string, 0, len(metrics)),
		Rows:             make([]Row, 0, len(rows)),
	}
	for _, h := range dims {
		report.DimensionHeaders = append(report.DimensionHeaders, h.Name)
	}
	for _, h := range metrics {
		report.MetricHeaders = append(report.MetricHeaders, h.Name)
	}
	for _, r := range rows {
		row := Row{
			Dimensions: make([]string, 0, len(r.DimensionValues)),
			Metrics:    make([]string, 0, len(r.MetricValues)),
		}
		for _, v := range r.DimensionValues {
			row.Dimensions = append(row.Dimensions, v.Value)
		}
		for _, v := range r.MetricValues {
			row.Metrics = append(row.Metrics, v.Value)
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}
