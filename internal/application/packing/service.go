// Package packing crea las packing lists diarias con su código PL-YYYYMMDD-NNN.
package packing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// Service caso de uso de packing lists.
type Service struct {
	txRunner ports.TxRunner
	repo     repository.PackingListRepository
	clock    ports.Clock
	log      *logger.Logger
}

// NewService construye el caso de uso. El reloj define el día calendario del contador.
func NewService(txRunner ports.TxRunner, repo repository.PackingListRepository, clock ports.Clock, log *logger.Logger) *Service {
	return &Service{txRunner: txRunner, repo: repo, clock: clock, log: log.WithComponent("packing")}
}

// CreateInput totales informados por quien crea la lista y referencia al PDF ya almacenado.
type CreateInput struct {
	CreatedBy    string
	TotalCartons int
	TotalWeight  decimal.Decimal
	PDFFile      string
}

// Create asigna el código del día y persiste la lista en la misma transacción.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.PackingList, error) {
	if in.CreatedBy == "" {
		return nil, fmt.Errorf("creador requerido: %w", domain.ErrInvalidInput)
	}
	if in.TotalCartons < 0 || in.TotalWeight.IsNegative() {
		return nil, fmt.Errorf("totales negativos: %w", domain.ErrInvalidInput)
	}

	var pl *entity.PackingList
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		now := s.clock.Now()
		n, err := repos.Sequences.Next(ctx, sequence.PackingListScope(now))
		if err != nil {
			return err
		}
		pl = &entity.PackingList{
			ID:           uuid.New().String(),
			Code:         sequence.FormatPackingListCode(now, n),
			Date:         now,
			CreatedBy:    in.CreatedBy,
			TotalCartons: in.TotalCartons,
			TotalWeight:  in.TotalWeight,
			PDFFile:      in.PDFFile,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return repos.PackingLists.Create(ctx, pl)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("packing_list_id", pl.ID).Str("code", pl.Code).Msg("packing list creada")
	return pl, nil
}

// Get devuelve una packing list por id.
func (s *Service) Get(ctx context.Context, id string) (*entity.PackingList, error) {
	pl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, domain.ErrPackingListNotFound
	}
	return pl, nil
}

// List más recientes primero.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.PackingList, error) {
	return s.repo.List(ctx, limit, offset)
}
