package postgres

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores por ámbito en la tabla sequence_counters.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa el contador del ámbito en una sola sentencia. El upsert toma el lock de la fila,
// así que dos transacciones sobre el mismo ámbito se serializan y ninguna lee un valor viejo.
// La fila queda bloqueada hasta el commit de la transacción que la incrementó.
func (r *SequenceRepo) Next(ctx context.Context, scope sequence.Scope) (int64, error) {
	query := `
		INSERT INTO sequence_counters (scope, value)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(ctx, query, string(scope)).Scan(&n); err != nil {
		return 0, wrapErr("next sequence "+string(scope), err)
	}
	return n, nil
}
