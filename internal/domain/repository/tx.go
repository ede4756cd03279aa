package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Movements StockMovementRepository
	Documents DocumentRepository
	Entries   LedgerEntryRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Garantiza atomicidad para el motor de inventario y finanzas.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
