package dto

// ReportQuery is the shared query of every analytics endpoint
type ReportQuery struct {
	StartDate string
	EndDate   string
	Limit     int64
}

// RealtimeReport holds the users active right now
type RealtimeReport struct {
	ActiveUsers int64 `json:"activeUsers"`
}

// OverviewReport holds the headline totals of a date range
type OverviewReport struct {
	TotalUsers         float64 `json:"totalUsers"`
	Sessions           float64 `json:"sessions"`
	PageViews          float64 `json:"pageViews"`
	BounceRate         float64 `json:"bounceRate"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	EngagedSessions    float64 `json:"engagedSessions"`
	NewUsers           float64 `json:"newUsers"`
}

// ReportRecord is one flattened report row keyed by field name
type ReportRecord map[string]interface{}

// ContactClickReport relates contact and CTA events to sessions
type ContactClickReport struct {
	TotalSessions      float64        `json:"totalSessions"`
	TotalContactClicks float64        `json:"totalContactClicks"`
	ClickRate          float64        `json:"clickRate"`
	Events             []ReportRecord `json:"events"`
}
