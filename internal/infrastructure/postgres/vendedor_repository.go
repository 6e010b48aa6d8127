package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

var _ repository.VendedorRepository = (*VendedorRepo)(nil)

// VendedorRepo implementación de VendedorRepository sobre PostgreSQL.
type VendedorRepo struct {
	q Querier
}

// NewVendedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendedorRepository(q Querier) *VendedorRepo {
	return &VendedorRepo{q: q}
}

const vendedorColumns = `id, nome, email, telefone, comissao, meta_mensal, status, created_at, updated_at`

func scanVendedor(row pgx.Row) (*entity.Vendedor, error) {
	var v entity.Vendedor
	err := row.Scan(&v.ID, &v.Nome, &v.Email, &v.Telefone, &v.Comissao, &v.MetaMensal, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendedorRepo) Create(ctx context.Context, v *entity.Vendedor) error {
	query := `INSERT INTO vendedores (` + vendedorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, v.ID, v.Nome, v.Email, v.Telefone, v.Comissao, v.MetaMensal, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return writeError("insert vendedor", err)
	}
	return nil
}

func (r *VendedorRepo) GetByID(ctx context.Context, id string) (*entity.Vendedor, error) {
	v, err := scanVendedor(r.q.QueryRow(ctx, `SELECT `+vendedorColumns+` FROM vendedores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get vendedor", err)
	}
	return v, nil
}

func (r *VendedorRepo) Update(ctx context.Context, v *entity.Vendedor) error {
	query := `
		UPDATE vendedores SET nome = $2, email = $3, telefone = $4, comissao = $5, meta_mensal = $6,
			status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, v.ID, v.Nome, v.Email, v.Telefone, v.Comissao, v.MetaMensal, v.Status, v.UpdatedAt)
	if err != nil {
		return writeError("update vendedor", err)
	}
	return affected(tag)
}

func (r *VendedorRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM vendedores WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete vendedor", err)
	}
	return affected(tag)
}

func (r *VendedorRepo) List(ctx context.Context) ([]*entity.Vendedor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vendedorColumns+` FROM vendedores`)
	if err != nil {
		return nil, readError("list vendedores", err)
	}
	defer rows.Close()
	var list []*entity.Vendedor
	for rows.Next() {
		v, err := scanVendedor(rows)
		if err != nil {
			return nil, readError("scan vendedor", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("list vendedores", err)
	}
	// lower() de Postgres depende de la collation y no ignora acentos; se ordena igual que en memoria.
	textsearch.SortByName(list, func(x *entity.Vendedor) string { return x.Nome }, func(x *entity.Vendedor) string { return x.ID })
	return list, nil
}
