package postgres

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.AdministratorRepository = (*AdministratorRepo)(nil)

const administratorColumns = `id, username, password_hash, email, role, permissions, is_active, created_at, updated_at`

// AdministratorRepo implementación del puerto AdministratorRepository sobre PostgreSQL.
type AdministratorRepo struct {
	q Querier
}

// NewAdministratorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdministratorRepository(q Querier) *AdministratorRepo {
	return &AdministratorRepo{q: q}
}

func scanAdministrator(row rowScanner) (*entity.Administrator, error) {
	var a entity.Administrator
	if err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.Role, &a.Permissions, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un administrador. Username duplicado -> domain.ErrDuplicate.
func (r *AdministratorRepo) Create(ctx context.Context, a *entity.Administrator) error {
	query := `INSERT INTO administrators (` + administratorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.Email, a.Role, a.Permissions, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Storage("insert administrator", err)
	}
	return nil
}

// GetByID obtiene un administrador por ID.
func (r *AdministratorRepo) GetByID(ctx context.Context, id string) (*entity.Administrator, error) {
	a, err := scanAdministrator(r.q.QueryRow(ctx, `SELECT `+administratorColumns+` FROM administrators WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get administrator", err)
	}
	return a, nil
}

// GetByUsername obtiene un administrador por nombre de usuario.
func (r *AdministratorRepo) GetByUsername(ctx context.Context, username string) (*entity.Administrator, error) {
	a, err := scanAdministrator(r.q.QueryRow(ctx,
		`SELECT `+administratorColumns+` FROM administrators WHERE username = $1`, username))
	if err != nil {
		return nil, wrapErr("get administrator by username", err)
	}
	return a, nil
}

// Count devuelve el total de administradores.
func (r *AdministratorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM administrators`).Scan(&n); err != nil {
		return 0, domain.Storage("count administrators", err)
	}
	return n, nil
}
