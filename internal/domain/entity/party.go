package entity

import "time"

// Customer cliente (contraparte de cotizaciones, pedidos y notas de salida).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // CPF/CNPJ, NIT, etc.
	Email     string
	Phone     string
	Lifecycle Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier proveedor (contraparte de notas de entrada).
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Lifecycle Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
