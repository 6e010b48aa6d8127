package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, nome, email, telefone, cpf, cnpj, endereco, cidade, estado, cep, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CPF, &c.CNPJ,
		&c.Endereco, &c.Cidade, &c.Estado, &c.CEP, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Nome, c.Email, c.Telefone, c.CPF, c.CNPJ,
		c.Endereco, c.Cidade, c.Estado, c.CEP, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return writeError("insert cliente", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get cliente", err)
	}
	return c, nil
}

// Update reemplaza los campos editables.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nome = $2, email = $3, telefone = $4, cpf = $5, cnpj = $6,
			endereco = $7, cidade = $8, estado = $9, cep = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Nome, c.Email, c.Telefone, c.CPF, c.CNPJ,
		c.Endereco, c.Cidade, c.Estado, c.CEP, c.UpdatedAt)
	if err != nil {
		return writeError("update cliente", err)
	}
	return affected(tag)
}

// Delete elimina el cliente; ErrInUse si tiene ventas o presupuestos.
func (r *ClienteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete cliente", err)
	}
	return affected(tag)
}

// List clientes por nombre.
func (r *ClienteRepo) List(ctx context.Context) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clienteColumns+` FROM clientes`)
	if err != nil {
		return nil, readError("list clientes", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, readError("scan cliente", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("list clientes", err)
	}
	// lower() de Postgres depende de la collation y no ignora acentos; se ordena igual que en memoria.
	textsearch.SortByName(list, func(x *entity.Cliente) string { return x.Nome }, func(x *entity.Cliente) string { return x.ID })
	return list, nil
}

// Count total de clientes.
func (r *ClienteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&n); err != nil {
		return 0, readError("count clientes", err)
	}
	return n, nil
}
