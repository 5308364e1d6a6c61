package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// PackingListRepository define el puerto de persistencia para PackingList.
type PackingListRepository interface {
	Create(ctx context.Context, pl *entity.PackingList) error
	GetByID(ctx context.Context, id string) (*entity.PackingList, error)
	GetByCode(ctx context.Context, code string) (*entity.PackingList, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PackingList, error)
}
