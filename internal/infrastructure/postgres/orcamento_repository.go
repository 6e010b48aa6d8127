package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

var _ repository.OrcamentoRepository = (*OrcamentoRepo)(nil)

// OrcamentoRepo implementación de OrcamentoRepository sobre PostgreSQL.
// El grafo (ítems y materiales) se borra y se recrea completo en cada reemplazo.
type OrcamentoRepo struct {
	q Querier
}

// NewOrcamentoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrcamentoRepository(q Querier) *OrcamentoRepo {
	return &OrcamentoRepo{q: q}
}

const orcamentoSelect = `
	SELECT o.id, o.numero, o.data, o.status, o.observacoes, o.cliente_id, o.valor_total, o.created_at, o.updated_at,
	       c.id, c.nome, c.email, c.telefone
	FROM orcamentos o
	JOIN clientes c ON c.id = o.cliente_id`

func scanOrcamento(row pgx.Row) (*entity.Orcamento, error) {
	o := entity.Orcamento{Cliente: &entity.Contato{}}
	err := row.Scan(&o.ID, &o.Numero, &o.Data, &o.Status, &o.Observacoes, &o.ClienteID, &o.ValorTotal,
		&o.CreatedAt, &o.UpdatedAt, &o.Cliente.ID, &o.Cliente.Nome, &o.Cliente.Email, &o.Cliente.Telefone)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta cabecera, ítems y materiales.
func (r *OrcamentoRepo) Create(ctx context.Context, o *entity.Orcamento) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO orcamentos (id, numero, data, status, observacoes, cliente_id, valor_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.Numero, o.Data, o.Status, o.Observacoes, o.ClienteID, o.ValorTotal, o.CreatedAt, o.UpdatedAt)
	queueItens(b, o)
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return writeError("insert orcamento", err)
	}
	return nil
}

func queueItens(b *pgx.Batch, o *entity.Orcamento) {
	for i, it := range o.Itens {
		b.Queue(`
			INSERT INTO orcamento_itens (id, orcamento_id, posicao, descricao, quantidade, valor_unitario)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, o.ID, i, it.Descricao, it.Quantidade, it.ValorUnitario)
		for j, m := range it.Materiais {
			b.Queue(`
				INSERT INTO orcamento_materiais (id, orcamento_item_id, material_id, quantidade, posicao)
				VALUES ($1, $2, $3, $4, $5)`,
				m.ID, it.ID, m.MaterialID, m.Quantidade, j)
		}
	}
}

// GetByID presupuesto con cliente, ítems y materiales; (nil, nil) si no existe.
func (r *OrcamentoRepo) GetByID(ctx context.Context, id string) (*entity.Orcamento, error) {
	o, err := scanOrcamento(r.q.QueryRow(ctx, orcamentoSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get orcamento", err)
	}
	if err := r.loadItens(ctx, []*entity.Orcamento{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate bloquea la cabecera antes de leer el grafo. Solo dentro de una tx.
func (r *OrcamentoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Orcamento, error) {
	var locked string
	err := r.q.QueryRow(ctx, `SELECT id FROM orcamentos WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("lock orcamento", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateHeader actualiza la cabecera, incluido valor_total.
func (r *OrcamentoRepo) UpdateHeader(ctx context.Context, o *entity.Orcamento) error {
	query := `
		UPDATE orcamentos SET numero = $2, data = $3, status = $4, observacoes = $5, cliente_id = $6,
			valor_total = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, o.ID, o.Numero, o.Data, o.Status, o.Observacoes, o.ClienteID, o.ValorTotal, o.UpdatedAt)
	if err != nil {
		return writeError("update orcamento", err)
	}
	return affected(tag)
}

// ReplaceItens borra materiales e ítems actuales y crea los de o.Itens.
func (r *OrcamentoRepo) ReplaceItens(ctx context.Context, o *entity.Orcamento) error {
	if err := r.deleteItens(ctx, o.ID); err != nil {
		return err
	}
	b := &pgx.Batch{}
	queueItens(b, o)
	if b.Len() == 0 {
		return nil
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return writeError("insert orcamento_itens", err)
	}
	return nil
}

func (r *OrcamentoRepo) deleteItens(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM orcamento_materiais
		WHERE orcamento_item_id IN (SELECT id FROM orcamento_itens WHERE orcamento_id = $1)`, id)
	if err != nil {
		return deleteError("delete orcamento_materiais", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orcamento_itens WHERE orcamento_id = $1`, id); err != nil {
		return deleteError("delete orcamento_itens", err)
	}
	return nil
}

// Delete borra materiales, ítems y cabecera.
func (r *OrcamentoRepo) Delete(ctx context.Context, id string) error {
	if err := r.deleteItens(ctx, id); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM orcamentos WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete orcamento", err)
	}
	return affected(tag)
}

// List presupuestos más recientes primero; status vacío = todos.
func (r *OrcamentoRepo) List(ctx context.Context, status string) ([]*entity.Orcamento, error) {
	rows, err := r.q.Query(ctx, orcamentoSelect+` WHERE ($1 = '' OR o.status = $1) ORDER BY o.data DESC, o.id`, status)
	if err != nil {
		return nil, readError("list orcamentos", err)
	}
	var list []*entity.Orcamento
	for rows.Next() {
		o, err := scanOrcamento(rows)
		if err != nil {
			rows.Close()
			return nil, readError("scan orcamento", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, readError("list orcamentos", err)
	}
	if err := r.loadItens(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ResumoPorStatus conteo y suma de valor_total por estado.
func (r *OrcamentoRepo) ResumoPorStatus(ctx context.Context) ([]entity.OrcamentoStatusResumo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(valor_total), 0)
		FROM orcamentos GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, readError("resumo orcamentos", err)
	}
	defer rows.Close()
	var out []entity.OrcamentoStatusResumo
	for rows.Next() {
		var s entity.OrcamentoStatusResumo
		if err := rows.Scan(&s.Status, &s.Quantidade, &s.Valor); err != nil {
			return nil, readError("scan resumo", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// loadItens carga ítems y materiales de todos los presupuestos con dos consultas.
func (r *OrcamentoRepo) loadItens(ctx context.Context, list []*entity.Orcamento) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Orcamento, len(list))
	for i, o := range list {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Itens = []entity.OrcamentoItem{}
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, orcamento_id, descricao, quantidade, valor_unitario
		FROM orcamento_itens
		WHERE orcamento_id = ANY($1::uuid[])
		ORDER BY orcamento_id, posicao`, ids)
	if err != nil {
		return readError("list orcamento_itens", err)
	}
	for rows.Next() {
		var it entity.OrcamentoItem
		if err := rows.Scan(&it.ID, &it.OrcamentoID, &it.Descricao, &it.Quantidade, &it.ValorUnitario); err != nil {
			rows.Close()
			return readError("scan orcamento_item", err)
		}
		it.Materiais = []entity.OrcamentoMaterial{}
		o := byID[it.OrcamentoID]
		o.Itens = append(o.Itens, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return readError("list orcamento_itens", err)
	}

	// índice ítem -> posición dentro de su presupuesto
	type pos struct {
		o *entity.Orcamento
		i int
	}
	itens := make(map[string]pos)
	for _, o := range list {
		for i := range o.Itens {
			itens[o.Itens[i].ID] = pos{o, i}
		}
	}

	rows, err = r.q.Query(ctx, `
		SELECT m.id, m.orcamento_item_id, m.material_id, m.quantidade,
		       mt.id, mt.name, mt.type, mt.unit, mt.price
		FROM orcamento_materiais m
		JOIN orcamento_itens i ON i.id = m.orcamento_item_id
		JOIN materials mt ON mt.id = m.material_id
		WHERE i.orcamento_id = ANY($1::uuid[])
		ORDER BY m.orcamento_item_id, m.posicao`, ids)
	if err != nil {
		return readError("list orcamento_materiais", err)
	}
	defer rows.Close()
	for rows.Next() {
		m := entity.OrcamentoMaterial{Material: &entity.MaterialRef{}}
		if err := rows.Scan(&m.ID, &m.OrcamentoItemID, &m.MaterialID, &m.Quantidade,
			&m.Material.ID, &m.Material.Name, &m.Material.Type, &m.Material.Unit, &m.Material.Price); err != nil {
			return readError("scan orcamento_material", err)
		}
		p, ok := itens[m.OrcamentoItemID]
		if !ok {
			continue
		}
		p.o.Itens[p.i].Materiais = append(p.o.Itens[p.i].Materiais, m)
	}
	return rows.Err()
}
