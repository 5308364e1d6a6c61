package repository

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

// SequenceRepository asigna el siguiente valor de un contador por ámbito.
// Next incrementa de forma atómica y serializa a los llamadores concurrentes del mismo ámbito;
// el primer valor de un ámbito nuevo es 1. Ejecutado dentro de una transacción, un rollback
// puede quemar el número, pero los valores confirmados son estrictamente crecientes.
type SequenceRepository interface {
	Next(ctx context.Context, scope sequence.Scope) (int64, error)
}
