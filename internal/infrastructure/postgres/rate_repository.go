package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.RateRepository = (*RateRepo)(nil)

// RateRepo catálogo de tarifas (service_tiers y weight_handlings).
type RateRepo struct {
	q Querier
}

// NewRateRepository construye el adaptador.
func NewRateRepository(q Querier) *RateRepo {
	return &RateRepo{q: q}
}

func (r *RateRepo) ListServiceTiers(ctx context.Context) ([]*entity.ServiceTier, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, price_per_kg_usd FROM service_tiers ORDER BY price_per_kg_usd, name`)
	if err != nil {
		return nil, wrapErr("list service tiers", err)
	}
	defer rows.Close()
	var list []*entity.ServiceTier
	for rows.Next() {
		t, err := scanServiceTier(rows)
		if err != nil {
			return nil, wrapErr("scan service tier", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *RateRepo) ListWeightHandlings(ctx context.Context) ([]*entity.WeightHandling, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, rate_tsh_per_kg FROM weight_handlings ORDER BY rate_tsh_per_kg, name`)
	if err != nil {
		return nil, wrapErr("list weight handlings", err)
	}
	defer rows.Close()
	var list []*entity.WeightHandling
	for rows.Next() {
		w, err := scanWeightHandling(rows)
		if err != nil {
			return nil, wrapErr("scan weight handling", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *RateRepo) GetServiceTier(ctx context.Context, id string) (*entity.ServiceTier, error) {
	if !isUUID(id) {
		return nil, nil
	}
	t, err := scanServiceTier(r.q.QueryRow(ctx, `SELECT id, name, description, price_per_kg_usd FROM service_tiers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get service tier", err)
	}
	return t, nil
}

func (r *RateRepo) GetWeightHandling(ctx context.Context, id string) (*entity.WeightHandling, error) {
	if !isUUID(id) {
		return nil, nil
	}
	w, err := scanWeightHandling(r.q.QueryRow(ctx, `SELECT id, name, description, rate_tsh_per_kg FROM weight_handlings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get weight handling", err)
	}
	return w, nil
}

func (r *RateRepo) CreateServiceTier(ctx context.Context, t *entity.ServiceTier) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO service_tiers (id, name, description, price_per_kg_usd) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, nullIfEmpty(t.Description), t.PricePerKgUSD,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("service tier %q already exists: %w: %w", t.Name, domain.ErrDuplicate, err)
		}
		return wrapErr("insert service tier", err)
	}
	return nil
}

func (r *RateRepo) CreateWeightHandling(ctx context.Context, w *entity.WeightHandling) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO weight_handlings (id, name, description, rate_tsh_per_kg) VALUES ($1, $2, $3, $4)`,
		w.ID, w.Name, nullIfEmpty(w.Description), w.RateTshPerKg,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("weight handling %q already exists: %w: %w", w.Name, domain.ErrDuplicate, err)
		}
		return wrapErr("insert weight handling", err)
	}
	return nil
}

func scanServiceTier(row pgx.Row) (*entity.ServiceTier, error) {
	var t entity.ServiceTier
	var desc *string
	if err := row.Scan(&t.ID, &t.Name, &desc, &t.PricePerKgUSD); err != nil {
		return nil, err
	}
	t.Description = derefStr(desc)
	return &t, nil
}

func scanWeightHandling(row pgx.Row) (*entity.WeightHandling, error) {
	var w entity.WeightHandling
	var desc *string
	if err := row.Scan(&w.ID, &w.Name, &desc, &w.RateTshPerKg); err != nil {
		return nil, err
	}
	w.Description = derefStr(desc)
	return &w, nil
}
