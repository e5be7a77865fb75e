package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/finsight/cashflow_backend/internal/core/ports/services"
	"github.com/finsight/cashflow_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerScenarioRoutes(v1, cfg, services.Scenario, services.FlowEdit)
	registerReportingRoutes(v1, cfg, services.Scenario, services.Reporting, services.Graph)
}
