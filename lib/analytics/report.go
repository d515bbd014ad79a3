package analytics

import (
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

// Request shapes are the Data API's own. Realtime reports reuse
// ReportRequest and ignore its date ranges.
type (
	ReportRequest    = analyticsdata.RunReportRequest
	DateRange        = analyticsdata.DateRange
	OrderBy          = analyticsdata.OrderBy
	MetricOrderBy    = analyticsdata.MetricOrderBy
	DimensionOrderBy = analyticsdata.DimensionOrderBy
	FilterExpression = analyticsdata.FilterExpression
)

// Contains builds a filter matching values of field that contain value
func Contains(field, value string) *FilterExpression {
	return &FilterExpression{Filter: &analyticsdata.Filter{
		FieldName:    field,
		StringFilter: &analyticsdata.StringFilter{MatchType: "CONTAINS", Value: value},
	}}
}

// AnyOf builds an OR group of expressions
func AnyOf(exprs ...*FilterExpression) *FilterExpression {
	return &FilterExpression{OrGroup: &analyticsdata.FilterExpressionList{Expressions: exprs}}
}

// Dimensions builds a dimension list from names
func Dimensions(names ...string) []*analyticsdata.Dimension {
	out := make([]*analyticsdata.Dimension, 0, len(names))
	for _, n := range names {
		out = append(out, &analyticsdata.Dimension{Name: n})
	}
	return out
}

// Metrics builds a metric list from names
func Metrics(names ...string) []*analyticsdata.Metric {
	out := make([]*analyticsdata.Metric, 0, len(names))
	for _, n := range names {
		out = append(out, &analyticsdata.Metric{Name: n})
	}
	return out
}

// Row holds the values of one report row in header order
type Row struct {
	Dimensions []string
	Metrics    []string
}

// Report is the tabular result of a report query
type Report struct {
	DimensionHeaders []string
	MetricHeaders    []string
	Rows             []Row
}
