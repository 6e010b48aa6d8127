package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementación de ProdutoRepository sobre PostgreSQL (usable con pool o tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoColumns = `id, nome, categoria, preco, estoque, fornecedor, created_at, updated_at`

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(&p.ID, &p.Nome, &p.Categoria, &p.Preco, &p.Estoque, &p.Fornecedor, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto.
func (r *ProdutoRepo) Create(ctx context.Context, p *entity.Produto) error {
	query := `INSERT INTO produtos (` + produtoColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Nome, p.Categoria, p.Preco, p.Estoque, p.Fornecedor, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return writeError("insert produto", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProdutoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	return r.get(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE). Solo dentro de una tx.
func (r *ProdutoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Produto, error) {
	return r.get(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProdutoRepo) get(ctx context.Context, query, id string) (*entity.Produto, error) {
	p, err := scanProduto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get produto", err)
	}
	return p, nil
}

// Update reemplaza los campos editables. estoque solo se toca en un ajuste manual (setEstoque);
// en los demás casos la columna queda como la dejaron las ventas y se devuelve en p.
func (r *ProdutoRepo) Update(ctx context.Context, p *entity.Produto, setEstoque bool) error {
	query := `
		UPDATE produtos SET nome = $2, categoria = $3, preco = $4, fornecedor = $5, updated_at = $6
		WHERE id = $1
		RETURNING estoque`
	args := []any{p.ID, p.Nome, p.Categoria, p.Preco, p.Fornecedor, p.UpdatedAt}
	if setEstoque {
		query = `
		UPDATE produtos SET nome = $2, categoria = $3, preco = $4, fornecedor = $5, updated_at = $6, estoque = $7
		WHERE id = $1
		RETURNING estoque`
		args = append(args, p.Estoque)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&p.Estoque); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return writeError("update produto", err)
	}
	return nil
}

// Delete elimina el producto; ErrInUse si aparece en alguna venta.
func (r *ProdutoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete produto", err)
	}
	return affected(tag)
}

// List productos por nombre.
func (r *ProdutoRepo) List(ctx context.Context) ([]*entity.Produto, error) {
	rows, err := r.q.Query(ctx, `SELECT `+produtoColumns+` FROM produtos`)
	if err != nil {
		return nil, readError("list produtos", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, readError("scan produto", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("list produtos", err)
	}
	// lower() de Postgres depende de la collation y no ignora acentos; se ordena igual que en memoria.
	textsearch.SortByName(list, func(x *entity.Produto) string { return x.Nome }, func(x *entity.Produto) string { return x.ID })
	return list, nil
}

// DecrementStock descuenta solo si alcanza; 0 filas = otro escritor se adelantó.
func (r *ProdutoRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	query := `UPDATE produtos SET estoque = estoque - $2, updated_at = now() WHERE id = $1 AND estoque >= $2`
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return writeError("decrement estoque", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decrement estoque %s: %w", id, domain.ErrConflict)
	}
	return nil
}

// IncrementStock devuelve cantidad al estoque (borrado de venta).
func (r *ProdutoRepo) IncrementStock(ctx context.Context, id string, qty int) error {
	tag, err := r.q.Exec(ctx, `UPDATE produtos SET estoque = estoque + $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		return writeError("increment estoque", err)
	}
	return affected(tag)
}
