package postgres

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, supplier_type, name, postal_code, address, phone, email, payment_terms,
		bank_name, branch_name, account_type, account_number, account_holder, notes, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.SupplierType, &s.Name, &s.PostalCode, &s.Address, &s.Phone, &s.Email, &s.PaymentTerms,
		&s.BankName, &s.BranchName, &s.AccountType, &s.AccountNumber, &s.AccountHolder, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SupplierType, s.Name, s.PostalCode, s.Address, s.Phone, s.Email, s.PaymentTerms,
		s.BankName, s.BranchName, s.AccountType, s.AccountNumber, s.AccountHolder, s.Notes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return domain.Storage("insert supplier", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get supplier", err)
	}
	return s, nil
}

// GetByName obtiene el primer proveedor con ese nombre.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE name = $1 ORDER BY id LIMIT 1`, name))
	if err != nil {
		return nil, wrapErr("get supplier by name", err)
	}
	return s, nil
}

// List devuelve todos los proveedores.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, domain.Storage("list suppliers", err)
	}
	defer rows.Close()
	var out []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, domain.Storage("scan supplier", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list suppliers", err)
	}
	return out, nil
}

// Count devuelve el total de proveedores.
func (r *SupplierRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&n); err != nil {
		return 0, domain.Storage("count suppliers", err)
	}
	return n, nil
}
