package services

import (
	"context"

	"legacyestates/internal/database"
)

// HealthStatus is the health check response body
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthService implements the health check
type HealthService struct {
	serviceName string
}

// NewHealthService creates a new health service
func NewHealthService(serviceName string) *HealthService {
	return &HealthService{serviceName: serviceName}
}

// Check reports liveness and database reachability
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := "healthy"
	if err := database.HealthCheck(); err != nil {
		status = "degraded"
	}
	return &HealthStatus{
		Status:  status,
		Service: s.serviceName,
	}
}
