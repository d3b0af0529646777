package v1

import (
	"net/http"

	"go-contacts-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

// NewHealthHandler registers /health (summary), /health/live and /health/ready.
// Readiness runs the same dependency checks as the summary.
func NewHealthHandler(r gin.IRoutes, checks map[string]healthcheck.Check) {
	checker := healthcheck.NewHandler()
	checker.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	for name, check := range checks {
		checker.AddReadinessCheck(name, check)
	}

	handler := &HealthHandler{healthUC: usecase.NewHealthUsecase(checks)}

	r.GET("/health", handler.Summary)
	r.GET("/health/live", gin.WrapF(statusOnly(checker.LiveEndpoint)))
	r.GET("/health/ready", gin.WrapF(statusOnly(checker.ReadyEndpoint)))
}

// statusOnly drops ?full=1 so liveness and readiness responses never carry check errors.
func statusOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.URL.RawQuery = ""
		next(w, r)
	}
}

// Summary godoc
// @Summary      Estado do serviço
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Summary(c *gin.Context) {
	report, healthy := h.healthUC.Check(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
