package services

import (
	portsrepo "github.com/finsight/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/cashflow_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	reporting := NewReportingService()
	container.Reporting = reporting
	container.Graph = NewGraphService(reporting)
	container.FlowEdit = NewFlowEditService()
	container.Scenario = NewScenarioService(repos.ScenarioRepo)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.ReportingSvcFacade = (*ReportingService)(nil)
	_ portssvc.GraphSvcFacade     = (*GraphService)(nil)
	_ portssvc.FlowEditSvcFacade  = (*FlowEditService)(nil)
	_ portssvc.ScenarioSvcFacade  = (*ScenarioService)(nil)
)
