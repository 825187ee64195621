package entity

import "time"

// Supplier proveedor de insumos, con datos bancarios para pago.
type Supplier struct {
	ID            string
	SupplierType  string
	Name          string
	PostalCode    string
	Address       string
	Phone         string
	Email         string
	PaymentTerms  int // días
	BankName      string
	BranchName    string
	AccountType   string
	AccountNumber string
	AccountHolder string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
