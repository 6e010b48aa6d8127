package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, type, description, quantity, unit, price, min_stock, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Name, &m.Type, &m.Description, &m.Quantity, &m.Unit,
		&m.Price, &m.MinStock, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Type, m.Description, m.Quantity, m.Unit,
		m.Price, m.MinStock, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return writeError("insert material", err)
	}
	return nil
}

// GetByID obtiene un material por ID; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get material", err)
	}
	return m, nil
}

// Update reemplaza los campos editables.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, type = $3, description = $4, quantity = $5, unit = $6,
			price = $7, min_stock = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Type, m.Description, m.Quantity, m.Unit,
		m.Price, m.MinStock, m.UpdatedAt)
	if err != nil {
		return writeError("update material", err)
	}
	return affected(tag)
}

// Delete elimina el material; ErrInUse si un presupuesto lo referencia.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete material", err)
	}
	return affected(tag)
}

// List materiales por nombre.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials`)
	if err != nil {
		return nil, readError("list materials", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, readError("scan material", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("list materials", err)
	}
	// lower() de Postgres depende de la collation y no ignora acentos; se ordena igual que en memoria.
	textsearch.SortByName(list, func(x *entity.Material) string { return x.Name }, func(x *entity.Material) string { return x.ID })
	return list, nil
}

// Resumo totales de la página de estoque.
func (r *MaterialRepo) Resumo(ctx context.Context) (entity.EstoqueResumo, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE quantity <= min_stock),
		       COALESCE(SUM(price * quantity), 0)
		FROM materials`
	var res entity.EstoqueResumo
	if err := r.q.QueryRow(ctx, query).Scan(&res.TotalItens, &res.AbaixoMinimo, &res.ValorTotal); err != nil {
		return res, readError("resumo materials", err)
	}
	res.ValorTotal = res.ValorTotal.Round(2)
	return res, nil
}
