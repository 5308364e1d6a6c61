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

var _ repository.PackingListRepository = (*PackingListRepo)(nil)

// PackingListRepo implementación de PackingListRepository.
type PackingListRepo struct {
	q Querier
}

// NewPackingListRepository construye el adaptador.
func NewPackingListRepository(q Querier) *PackingListRepo {
	return &PackingListRepo{q: q}
}

const packingListColumns = `id, code, list_date, created_by, total_cartons, total_weight, pdf_file, created_at, updated_at`

func (r *PackingListRepo) Create(ctx context.Context, pl *entity.PackingList) error {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	query := `INSERT INTO packing_lists (` + packingListColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		pl.ID, pl.Code, pl.Date, nullIfEmpty(pl.CreatedBy), pl.TotalCartons, pl.TotalWeight,
		nullIfEmpty(pl.PDFFile), pl.CreatedAt, pl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("packing list code already exists: %w: %w", domain.ErrDuplicate, err)
		}
		return wrapErr("insert packing list", err)
	}
	return nil
}

func (r *PackingListRepo) GetByID(ctx context.Context, id string) (*entity.PackingList, error) {
	if !isUUID(id) {
		return nil, nil
	}
	pl, err := scanPackingList(r.q.QueryRow(ctx, `SELECT `+packingListColumns+` FROM packing_lists WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get packing list", err)
	}
	return pl, nil
}

func (r *PackingListRepo) GetByCode(ctx context.Context, code string) (*entity.PackingList, error) {
	pl, err := scanPackingList(r.q.QueryRow(ctx, `SELECT `+packingListColumns+` FROM packing_lists WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get packing list by code", err)
	}
	return pl, nil
}

func (r *PackingListRepo) List(ctx context.Context, limit, offset int) ([]*entity.PackingList, error) {
	query := `SELECT ` + packingListColumns + ` FROM packing_lists ORDER BY created_at DESC, code DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitOrAll(limit), offset)
	if err != nil {
		return nil, wrapErr("list packing lists", err)
	}
	defer rows.Close()
	var list []*entity.PackingList
	for rows.Next() {
		pl, err := scanPackingList(rows)
		if err != nil {
			return nil, wrapErr("scan packing list", err)
		}
		list = append(list, pl)
	}
	return list, rows.Err()
}

func scanPackingList(row pgx.Row) (*entity.PackingList, error) {
	var pl entity.PackingList
	var createdBy, pdf *string
	err := row.Scan(&pl.ID, &pl.Code, &pl.Date, &createdBy, &pl.TotalCartons, &pl.TotalWeight, &pdf, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	pl.CreatedBy = derefStr(createdBy)
	pl.PDFFile = derefStr(pdf)
	return &pl, nil
}
