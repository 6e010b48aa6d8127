package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

var _ repository.VendaRepository = (*VendaRepo)(nil)

// VendaRepo implementación de VendaRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas traen cliente, vendedor y producto de cada ítem vía JOIN.
type VendaRepo struct {
	q Querier
}

// NewVendaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendaRepository(q Querier) *VendaRepo {
	return &VendaRepo{q: q}
}

const vendaSelect = `
	SELECT v.id, v.cliente_id, v.vendedor_id, v.total, v.status, v.data, v.created_at, v.updated_at,
	       c.id, c.nome, c.email, c.telefone, s.id, s.nome, s.email, s.telefone
	FROM vendas v
	JOIN clientes c ON c.id = v.cliente_id
	JOIN vendedores s ON s.id = v.vendedor_id`

func scanVenda(row pgx.Row) (*entity.Venda, error) {
	v := entity.Venda{Cliente: &entity.Contato{}, Vendedor: &entity.Contato{}}
	err := row.Scan(&v.ID, &v.ClienteID, &v.VendedorID, &v.Total, &v.Status, &v.Data, &v.CreatedAt, &v.UpdatedAt,
		&v.Cliente.ID, &v.Cliente.Nome, &v.Cliente.Email, &v.Cliente.Telefone,
		&v.Vendedor.ID, &v.Vendedor.Nome, &v.Vendedor.Email, &v.Vendedor.Telefone)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserta la cabecera y los ítems en un solo batch.
func (r *VendaRepo) Create(ctx context.Context, v *entity.Venda) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO vendas (id, cliente_id, vendedor_id, total, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.ClienteID, v.VendedorID, v.Total, v.Status, v.Data, v.CreatedAt, v.UpdatedAt)
	for i, it := range v.Itens {
		b.Queue(`
			INSERT INTO venda_itens (id, venda_id, produto_id, quantidade, preco_unit, posicao)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, v.ID, it.ProdutoID, it.Quantidade, it.PrecoUnit, i)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return writeError("insert venda", err)
	}
	return nil
}

// GetByID venta con cliente, vendedor e ítems; (nil, nil) si no existe.
func (r *VendaRepo) GetByID(ctx context.Context, id string) (*entity.Venda, error) {
	v, err := scanVenda(r.q.QueryRow(ctx, vendaSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get venda", err)
	}
	if err := r.loadItens(ctx, []*entity.Venda{v}); err != nil {
		return nil, err
	}
	return v, nil
}

// GetForUpdate bloquea la fila de la venta y la devuelve completa. Solo dentro de una tx.
func (r *VendaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venda, error) {
	var locked string
	err := r.q.QueryRow(ctx, `SELECT id FROM vendas WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("lock venda", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus cambia solo status y updated_at.
func (r *VendaRepo) UpdateStatus(ctx context.Context, v *entity.Venda) error {
	tag, err := r.q.Exec(ctx, `UPDATE vendas SET status = $2, updated_at = $3 WHERE id = $1`, v.ID, v.Status, v.UpdatedAt)
	if err != nil {
		return writeError("update venda", err)
	}
	return affected(tag)
}

// Delete borra ítems y cabecera. El estoque lo devuelve el caso de uso en la misma tx.
func (r *VendaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM venda_itens WHERE venda_id = $1`, id); err != nil {
		return deleteError("delete venda_itens", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM vendas WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete venda", err)
	}
	return affected(tag)
}

// List ventas de la más reciente a la más antigua.
func (r *VendaRepo) List(ctx context.Context) ([]*entity.Venda, error) {
	return r.list(ctx, vendaSelect+` ORDER BY v.data DESC, v.id`)
}

// ListByVendedor ventas de un vendedor, más recientes primero.
func (r *VendaRepo) ListByVendedor(ctx context.Context, vendedorID string) ([]*entity.Venda, error) {
	return r.list(ctx, vendaSelect+` WHERE v.vendedor_id = $1 ORDER BY v.data DESC, v.id`, vendedorID)
}

func (r *VendaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Venda, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, readError("list vendas", err)
	}
	var list []*entity.Venda
	for rows.Next() {
		v, err := scanVenda(rows)
		if err != nil {
			rows.Close()
			return nil, readError("scan venda", err)
		}
		list = append(list, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, readError("list vendas", err)
	}
	if err := r.loadItens(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItens carga los ítems de todas las ventas con una sola consulta.
func (r *VendaRepo) loadItens(ctx context.Context, vendas []*entity.Venda) error {
	if len(vendas) == 0 {
		return nil
	}
	ids := make([]string, len(vendas))
	byID := make(map[string]*entity.Venda, len(vendas))
	for i, v := range vendas {
		ids[i] = v.ID
		byID[v.ID] = v
		v.Itens = []entity.VendaItem{}
	}
	query := `
		SELECT i.id, i.venda_id, i.produto_id, i.quantidade, i.preco_unit, p.id, p.nome, p.preco
		FROM venda_itens i
		JOIN produtos p ON p.id = i.produto_id
		WHERE i.venda_id = ANY($1::uuid[])
		ORDER BY i.venda_id, i.posicao`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return readError("list venda_itens", err)
	}
	defer rows.Close()
	for rows.Next() {
		it := entity.VendaItem{Produto: &entity.ProdutoRef{}}
		if err := rows.Scan(&it.ID, &it.VendaID, &it.ProdutoID, &it.Quantidade, &it.PrecoUnit,
			&it.Produto.ID, &it.Produto.Nome, &it.Produto.Preco); err != nil {
			return readError("scan venda_item", err)
		}
		v := byID[it.VendaID]
		if v == nil {
			return fmt.Errorf("venda_item %s sin venda", it.ID)
		}
		v.Itens = append(v.Itens, it)
	}
	return rows.Err()
}

// Resumo agregados de ventas no canceladas.
func (r *VendaRepo) Resumo(ctx context.Context) (entity.VendasResumo, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(v.total), 0),
		       COALESCE((SELECT SUM(i.quantidade)
		                 FROM venda_itens i JOIN vendas v2 ON v2.id = i.venda_id
		                 WHERE v2.status <> $1), 0)
		FROM vendas v
		WHERE v.status <> $1`
	var res entity.VendasResumo
	if err := r.q.QueryRow(ctx, query, entity.VendaCancelada).Scan(&res.Quantidade, &res.Total, &res.ProdutosVendidos); err != nil {
		return res, readError("resumo vendas", err)
	}
	return res, nil
}
