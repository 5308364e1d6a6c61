package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.RateRepository = (*RateRepo)(nil)

// RateRepo catálogo de tarifas en memoria.
type RateRepo struct{ b binding }

func (r *RateRepo) ListServiceTiers(_ context.Context) ([]*entity.ServiceTier, error) {
	defer r.b.lock()()
	var out []*entity.ServiceTier
	for _, t := range r.b.state().tiers {
		out = append(out, &t)
	}
	return out, nil
}

func (r *RateRepo) ListWeightHandlings(_ context.Context) ([]*entity.WeightHandling, error) {
	defer r.b.lock()()
	var out []*entity.WeightHandling
	for _, w := range r.b.state().handlings {
		out = append(out, &w)
	}
	return out, nil
}

func (r *RateRepo) GetServiceTier(_ context.Context, id string) (*entity.ServiceTier, error) {
	defer r.b.lock()()
	for _, t := range r.b.state().tiers {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *RateRepo) GetWeightHandling(_ context.Context, id string) (*entity.WeightHandling, error) {
	defer r.b.lock()()
	for _, w := range r.b.state().handlings {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *RateRepo) CreateServiceTier(_ context.Context, t *entity.ServiceTier) error {
	defer r.b.lock()()
	st := r.b.state()
	for _, cur := range st.tiers {
		if cur.Name == t.Name {
			return fmt.Errorf("tarifa de servicio %s: %w", t.Name, domain.ErrDuplicate)
		}
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	st.tiers = append(st.tiers, *t)
	return nil
}

func (r *RateRepo) CreateWeightHandling(_ context.Context, w *entity.WeightHandling) error {
	defer r.b.lock()()
	st := r.b.state()
	for _, cur := range st.handlings {
		if cur.Name == w.Name {
			return fmt.Errorf("tarifa de manejo %s: %w", w.Name, domain.ErrDuplicate)
		}
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	st.handlings = append(st.handlings, *w)
	return nil
}
