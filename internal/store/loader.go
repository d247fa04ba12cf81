package store

import (
	"context"

	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

//go:generate mockgen -source=loader.go -destination=mocks/loader.go -package=mocks

// Loader busca um conjunto completo de registros do dashboard
type Loader interface {
	Load(ctx context.Context) (*domain.Bundle, error)
}
