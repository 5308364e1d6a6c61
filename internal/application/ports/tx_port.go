package ports

import (
	"context"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback y nada queda visible; si el motor reporta
// contención (serialización, deadlock, lock timeout) la transacción completa se reintenta
// y, agotado el presupuesto, el error es domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
