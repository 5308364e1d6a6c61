package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Invoices     InvoiceRepository
	Payments     PaymentRepository
	Sequences    SequenceRepository
	Shipments    ShipmentRepository
	PackingLists PackingListRepository
	Outbox       OutboxRepository
}
