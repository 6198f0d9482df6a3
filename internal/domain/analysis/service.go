package analysis

import "context"

// AnalysisService defines business logic for performance reporting.
type AnalysisService interface {
	// GetPerformanceReport scores every active employee for a calendar
	// month and aggregates the cohort summary.
	GetPerformanceReport(ctx context.Context, filter PerformanceFilter) (PerformanceReportResponse, error)
}
