package app

import (
	"context"
	"time"
)

// HealthCheckTimeout bounds each dependency check.
const HealthCheckTimeout = 5 * time.Second

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

// HealthReport summarizes whether the data layer can serve queries.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// Healthy reports whether every check passed.
func (r HealthReport) Healthy() bool {
	return r.Status == "healthy"
}

// CheckHealth pings the database and reports the result.
//
// A failed check is logged and, when New Relic is enabled, recorded as a
// HealthCheckError custom event. The report is returned either way; it is
// up to the caller to map it onto a probe response.
func (a *App) CheckHealth(ctx context.Context) HealthReport {
	logger := a.Logger.With().Str("operation", "health_check").Logger()

	report := HealthReport{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: a.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	dbStart := time.Now()
	err := a.DB.Ping(ctx)
	elapsed := time.Since(dbStart)

	if err != nil {
		report.Status = "unhealthy"
		report.Checks["database"] = CheckResult{
			Status:       "unhealthy",
			ResponseTime: elapsed,
			Error:        err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msg("database health check failed")

		if nrApp := a.LoggerService.GetApplication(); nrApp != nil {
			nrApp.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return report
	}

	report.Checks["database"] = CheckResult{
		Status:       "healthy",
		ResponseTime: elapsed,
	}

	logger.Debug().
		Dur("response_time", elapsed).
		Msg("database health check passed")

	return report
}
