// Package memory implementa los puertos de repositorio en memoria.
// Las transacciones se serializan con un único mutex y se deshacen restaurando una copia del estado,
// así que no hay bloqueo por fila: dos facturas distintas también esperan una a la otra.
// Es un backend de desarrollo y pruebas; la concurrencia por factura la da el adaptador postgres.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/sequence"
)

var _ ports.TxRunner = (*Store)(nil)

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	invoices      []entity.Invoice
	payments      []entity.Payment
	sequences     map[sequence.Scope]int64
	shipments     []entity.Shipment
	packingLists  []entity.PackingList
	tiers         []entity.ServiceTier
	handlings     []entity.WeightHandling
	notifications []entity.Notification
	devices       []entity.UserDevice
	outbox        []entity.OutboxEvent
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{data: &state{sequences: make(map[sequence.Scope]int64)}}
}

func (st *state) clone() *state {
	return &state{
		invoices:      slices.Clone(st.invoices),
		payments:      slices.Clone(st.payments),
		sequences:     maps.Clone(st.sequences),
		shipments:     slices.Clone(st.shipments),
		packingLists:  slices.Clone(st.packingLists),
		tiers:         slices.Clone(st.tiers),
		handlings:     slices.Clone(st.handlings),
		notifications: slices.Clone(st.notifications),
		devices:       slices.Clone(st.devices),
		outbox:        slices.Clone(st.outbox),
	}
}

// binding liga un repositorio al almacén. Dentro de Run el mutex ya está tomado.
type binding struct {
	s  *Store
	tx bool
}

func (b binding) lock() func() {
	if b.tx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (b binding) state() *state { return b.s.data }

// Run ejecuta fn con repositorios transaccionales. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	b := binding{s: s, tx: true}
	repos := repository.TxRepos{
		Invoices:     &InvoiceRepo{b},
		Payments:     &PaymentRepo{b},
		Sequences:    &SequenceRepo{b},
		Shipments:    &ShipmentRepo{b},
		PackingLists: &PackingListRepo{b},
		Outbox:       &OutboxRepo{b},
	}
	if err := fn(repos); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repositorios fuera de transacción.

func (s *Store) Invoices() *InvoiceRepo           { return &InvoiceRepo{binding{s: s}} }
func (s *Store) Payments() *PaymentRepo           { return &PaymentRepo{binding{s: s}} }
func (s *Store) Sequences() *SequenceRepo         { return &SequenceRepo{binding{s: s}} }
func (s *Store) Shipments() *ShipmentRepo         { return &ShipmentRepo{binding{s: s}} }
func (s *Store) PackingLists() *PackingListRepo   { return &PackingListRepo{binding{s: s}} }
func (s *Store) Rates() *RateRepo                 { return &RateRepo{binding{s: s}} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{binding{s: s}} }
func (s *Store) Devices() *DeviceRepo             { return &DeviceRepo{binding{s: s}} }
func (s *Store) Outbox() *OutboxRepo              { return &OutboxRepo{binding{s: s}} }

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
