// Package bootstrap arma el almacén, los casos de uso y el transporte push a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI de operaciones.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ledger"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/notify"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/outbox"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/packing"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/rates"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/tracking"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/memory"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/postgres"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/infrastructure/push"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/config"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

// Backend repositorios y runner de transacciones de un almacén concreto.
type Backend struct {
	TxRunner      ports.TxRunner
	Invoices      repository.InvoiceRepository
	Payments      repository.PaymentRepository
	Shipments     repository.ShipmentRepository
	PackingLists  repository.PackingListRepository
	Rates         repository.RateRepository
	Notifications repository.NotificationRepository
	Devices       repository.DeviceRepository
	Outbox        repository.OutboxRepository

	pool *pgxpool.Pool
}

// OpenBackend abre el almacén indicado por STORE_DRIVER.
func OpenBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case "memory":
		// Solo desarrollo y pruebas: un único mutex serializa todas las transacciones,
		// incluso las de facturas distintas, y los datos se pierden al reiniciar.
		log.Warn().Str("driver", "memory").Bool("serialized", true).
			Msg("almacén en memoria solo para desarrollo: transacciones serializadas y sin persistencia; usar STORE_DRIVER=postgres en producción")
		return NewMemoryBackend(memory.New()), nil
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return NewPostgresBackend(pool, cfg, log), nil
	default:
		return nil, fmt.Errorf("driver de almacén desconocido: %q", cfg.Store.Driver)
	}
}

// NewMemoryBackend envuelve un almacén en memoria.
func NewMemoryBackend(store *memory.Store) *Backend {
	return &Backend{
		TxRunner:      store,
		Invoices:      store.Invoices(),
		Payments:      store.Payments(),
		Shipments:     store.Shipments(),
		PackingLists:  store.PackingLists(),
		Rates:         store.Rates(),
		Notifications: store.Notifications(),
		Devices:       store.Devices(),
		Outbox:        store.Outbox(),
	}
}

// NewPostgresBackend construye los repositorios sobre el pool. Las lecturas sueltas usan el pool;
// las mutaciones pasan por el TxRunner.
func NewPostgresBackend(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger) *Backend {
	return &Backend{
		TxRunner:      postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMs, cfg.Ledger.SequenceRetries, log),
		Invoices:      postgres.NewInvoiceRepository(pool),
		Payments:      postgres.NewPaymentRepository(pool),
		Shipments:     postgres.NewShipmentRepository(pool),
		PackingLists:  postgres.NewPackingListRepository(pool),
		Rates:         postgres.NewRateRepository(pool),
		Notifications: postgres.NewNotificationRepository(pool),
		Devices:       postgres.NewDeviceRepository(pool),
		Outbox:        postgres.NewOutboxRepository(pool),
		pool:          pool,
	}
}

// Ping verifica el almacén; en memoria siempre responde.
func (b *Backend) Ping(ctx context.Context) error {
	if b.pool == nil {
		return nil
	}
	return b.pool.Ping(ctx)
}

// Close libera el pool si lo hay.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// NewPusher elige el transporte push configurado.
func NewPusher(cfg config.PushConfig, log *logger.Logger) notify.Pusher {
	if cfg.Driver == "webhook" {
		return push.NewWebhookPusher(cfg.WebhookURL, cfg.Timeout)
	}
	return push.NewLogPusher(log)
}

// Services casos de uso listos para usar.
type Services struct {
	Ledger     *ledger.Engine
	Tracking   *tracking.Service
	Packing    *packing.Service
	Rates      *rates.Service
	Notify     *notify.Service
	Dispatcher *outbox.Dispatcher
	Relay      *outbox.Relay
}

// NewServices conecta los casos de uso con el backend. Los eventos confirmados pasan por el
// dispatcher del outbox al sink de notificaciones; el relay reintenta los que quedaron pendientes.
func NewServices(b *Backend, cfg *config.Config, pusher notify.Pusher, clock ports.Clock, log *logger.Logger) *Services {
	sink := notify.NewSink(b.Notifications, b.Devices, pusher, clock, log)
	dispatcher := outbox.NewDispatcher(b.Outbox, sink, clock, log)
	return &Services{
		Ledger:     ledger.NewEngine(b.TxRunner, b.Invoices, b.Payments, b.Rates, dispatcher, clock, log),
		Tracking:   tracking.NewService(b.TxRunner, b.Shipments, dispatcher, clock, log),
		Packing:    packing.NewService(b.TxRunner, b.PackingLists, clock, log),
		Rates:      rates.NewService(b.Rates, log),
		Notify:     notify.NewService(b.Notifications, b.Devices, clock),
		Dispatcher: dispatcher,
		Relay: outbox.NewRelay(b.Outbox, dispatcher, clock, outbox.RelayConfig{
			Interval:  cfg.Outbox.RelayInterval,
			Grace:     cfg.Outbox.Grace,
			BatchSize: cfg.Outbox.BatchSize,
		}, log),
	}
}
