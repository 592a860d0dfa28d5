package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// AnalyzerChecker checks text-analysis backend availability.
type AnalyzerChecker interface {
	HealthCheck(ctx context.Context) error
}
