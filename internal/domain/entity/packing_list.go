package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackingList lista de empaque diaria. Code (PL-YYYYMMDD-%03d) se asigna una vez;
// los totales los informa quien la crea y el PDF se guarda fuera (PDFFile es la referencia).
type PackingList struct {
	ID           string
	Code         string
	Date         time.Time
	CreatedBy    string
	TotalCartons int
	TotalWeight  decimal.Decimal
	PDFFile      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
