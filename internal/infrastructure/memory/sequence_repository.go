package memory

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores por ámbito. Un rollback de la transacción devuelve el contador a su valor previo.
type SequenceRepo struct{ b binding }

func (r *SequenceRepo) Next(_ context.Context, scope sequence.Scope) (int64, error) {
	defer r.b.lock()()
	st := r.b.state()
	st.sequences[scope]++
	return st.sequences[scope], nil
}

// Current valor actual de un ámbito (0 si nunca se usó).
func (r *SequenceRepo) Current(scope sequence.Scope) int64 {
	defer r.b.lock()()
	return r.b.state().sequences[scope]
}
