package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// RateRepository catálogo de tarifas de servicio y de manejo.
type RateRepository interface {
	ListServiceTiers(ctx context.Context) ([]*entity.ServiceTier, error)
	ListWeightHandlings(ctx context.Context) ([]*entity.WeightHandling, error)
	GetServiceTier(ctx context.Context, id string) (*entity.ServiceTier, error)
	GetWeightHandling(ctx context.Context, id string) (*entity.WeightHandling, error)
	CreateServiceTier(ctx context.Context, t *entity.ServiceTier) error
	CreateWeightHandling(ctx context.Context, w *entity.WeightHandling) error
}
