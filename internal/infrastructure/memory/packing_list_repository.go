package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.PackingListRepository = (*PackingListRepo)(nil)

// PackingListRepo packing lists en memoria.
type PackingListRepo struct{ b binding }

func (r *PackingListRepo) Create(_ context.Context, pl *entity.PackingList) error {
	defer r.b.lock()()
	st := r.b.state()
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	for _, existing := range st.packingLists {
		if existing.Code == pl.Code {
			return fmt.Errorf("packing list %s: %w", pl.Code, domain.ErrDuplicate)
		}
	}
	st.packingLists = append(st.packingLists, *pl)
	return nil
}

func (r *PackingListRepo) GetByID(_ context.Context, id string) (*entity.PackingList, error) {
	defer r.b.lock()()
	for _, pl := range r.b.state().packingLists {
		if pl.ID == id {
			return &pl, nil
		}
	}
	return nil, nil
}

func (r *PackingListRepo) GetByCode(_ context.Context, code string) (*entity.PackingList, error) {
	defer r.b.lock()()
	for _, pl := range r.b.state().packingLists {
		if pl.Code == code {
			return &pl, nil
		}
	}
	return nil, nil
}

// List más recientes primero.
func (r *PackingListRepo) List(_ context.Context, limit, offset int) ([]*entity.PackingList, error) {
	defer r.b.lock()()
	st := r.b.state()
	out := make([]*entity.PackingList, 0, len(st.packingLists))
	for i := len(st.packingLists) - 1; i >= 0; i-- {
		pl := st.packingLists[i]
		out = append(out, &pl)
	}
	return page(out, limit, offset), nil
}
