package usecase

import (
	"context"
	"sort"
	"time"

	"go-contacts-backend/pkg/logger"

	"github.com/heptiolabs/healthcheck"
)

type HealthUsecase interface {
	// Check runs every dependency check. healthy is false when any of them failed.
	Check(ctx context.Context) (report map[string]string, healthy bool)
}

type healthUsecase struct {
	checks map[string]healthcheck.Check
}

// NewHealthUsecase reports on the named dependency checks, the same ones the
// readiness endpoint runs.
func NewHealthUsecase(checks map[string]healthcheck.Check) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := make(map[string]string, len(names)+2)
	healthy := true
	for _, name := range names {
		if ctx.Err() != nil {
			report[name] = "skipped"
			healthy = false
			continue
		}
		if err := u.checks[name](); err != nil {
			logger.Log.Warn("health check failed", "check", name, "error", err)
			report[name] = "error"
			healthy = false
			continue
		}
		report[name] = "ok"
	}

	report["status"] = "ok"
	if !healthy {
		report["status"] = "degraded"
	}
	report["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return report, healthy
}
