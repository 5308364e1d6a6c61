package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
)

// CreatePackingListRequest totales y referencia al PDF ya subido.
type CreatePackingListRequest struct {
	TotalCartons int             `json:"total_cartons"`
	TotalWeight  decimal.Decimal `json:"total_weight" swaggertype:"string" example:"80.5"`
	PDFFile      string          `json:"pdf_file"`
}

// PackingListResponse lista de empaque.
type PackingListResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Date         string    `json:"date"`
	CreatedBy    string    `json:"created_by"`
	TotalCartons int       `json:"total_cartons"`
	TotalWeight  string    `json:"total_weight"`
	PDFFile      string    `json:"pdf_file,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToPackingListResponse mapea la entidad.
func ToPackingListResponse(pl *entity.PackingList) *PackingListResponse {
	return &PackingListResponse{
		ID:           pl.ID,
		Code:         pl.Code,
		Date:         pl.Date.Format(dateLayout),
		CreatedBy:    pl.CreatedBy,
		TotalCartons: pl.TotalCartons,
		TotalWeight:  pl.TotalWeight.StringFixed(2),
		PDFFile:      pl.PDFFile,
		CreatedAt:    pl.CreatedAt,
		UpdatedAt:    pl.UpdatedAt,
	}
}

// ToPackingLists mapea un listado.
func ToPackingLists(list []*entity.PackingList) []*PackingListResponse {
	out := make([]*PackingListResponse, 0, len(list))
	for _, pl := range list {
		out = append(out, ToPackingListResponse(pl))
	}
	return out
}
