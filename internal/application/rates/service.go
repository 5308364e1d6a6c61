// Package rates administra el catálogo de tarifas de servicio y de manejo.
package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// ShippingConfig catálogo completo que consume la app al cotizar.
type ShippingConfig struct {
	ServiceTiers    []*entity.ServiceTier
	WeightHandlings []*entity.WeightHandling
}

// Service caso de uso del catálogo de tarifas.
type Service struct {
	repo repository.RateRepository
	log  *logger.Logger
}

// NewService construye el caso de uso.
func NewService(repo repository.RateRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("rates")}
}

// GetShippingConfig lista tarifas de servicio y de manejo.
func (s *Service) GetShippingConfig(ctx context.Context) (*ShippingConfig, error) {
	tiers, err := s.repo.ListServiceTiers(ctx)
	if err != nil {
		return nil, err
	}
	handlings, err := s.repo.ListWeightHandlings(ctx)
	if err != nil {
		return nil, err
	}
	return &ShippingConfig{ServiceTiers: tiers, WeightHandlings: handlings}, nil
}

// CreateServiceTier alta de una tarifa de servicio (USD por kg).
func (s *Service) CreateServiceTier(ctx context.Context, name, description string, pricePerKg decimal.Decimal) (*entity.ServiceTier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	if !pricePerKg.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	t := &entity.ServiceTier{Name: name, Description: description, PricePerKgUSD: pricePerKg}
	if err := s.repo.CreateServiceTier(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Str("tier_id", t.ID).Str("name", t.Name).Msg("tarifa de servicio creada")
	return t, nil
}

// CreateWeightHandling alta de una tarifa de manejo (TSh por kg).
func (s *Service) CreateWeightHandling(ctx context.Context, name, description string, ratePerKg decimal.Decimal) (*entity.WeightHandling, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	if !ratePerKg.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	w := &entity.WeightHandling{Name: name, Description: description, RateTshPerKg: ratePerKg}
	if err := s.repo.CreateWeightHandling(ctx, w); err != nil {
		return nil, err
	}
	s.log.Info().Str("handling_id", w.ID).Str("name", w.Name).Msg("tarifa de manejo creada")
	return w, nil
}

// Catálogo inicial para entornos nuevos.
var (
	DefaultServiceTiers = []entity.ServiceTier{
		{Name: "Economy", Description: "Sea freight, 45-60 days", PricePerKgUSD: decimal.RequireFromString("4.50")},
		{Name: "Standard", Description: "Air freight, 10-14 days", PricePerKgUSD: decimal.RequireFromString("8.00")},
		{Name: "Express", Description: "Priority air freight, 5-7 days", PricePerKgUSD: decimal.RequireFromString("12.00")},
	}
	DefaultWeightHandlings = []entity.WeightHandling{
		{Name: "Normal", Description: "General cargo", RateTshPerKg: decimal.RequireFromString("2500")},
		{Name: "Fragile", Description: "Handle with care", RateTshPerKg: decimal.RequireFromString("3200")},
	}
)

// Seed carga el catálogo inicial si el catálogo está vacío. Devuelve cuántas tarifas insertó.
func (s *Service) Seed(ctx context.Context) (int, error) {
	cfg, err := s.GetShippingConfig(ctx)
	if err != nil {
		return 0, err
	}
	inserted := 0
	if len(cfg.ServiceTiers) == 0 {
		for _, t := range DefaultServiceTiers {
			if _, err := s.CreateServiceTier(ctx, t.Name, t.Description, t.PricePerKgUSD); err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	if len(cfg.WeightHandlings) == 0 {
		for _, w := range DefaultWeightHandlings {
			if _, err := s.CreateWeightHandling(ctx, w.Name, w.Description, w.RateTshPerKg); err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}
