package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL
// (usable con pool o tx). Las consultas cargan las líneas de la receta.
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// Create persiste la receta y sus líneas.
func (r *FormulaRepo) Create(formula *entity.Formula) error {
	ctx := context.Background()
	query := `
		INSERT INTO formulas (id, product_id, name, yield, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		formula.ID, formula.ProductID, formula.Name, formula.Yield,
		formula.CreatedAt, formula.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create formula: %w", err)
	}
	lineQuery := `
		INSERT INTO formula_lines (id, formula_id, raw_material_id, quantity_per_lot, unit_measure, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, line := range formula.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, formula.ID, line.RawMaterialID, line.QuantityPerLot, line.UnitMeasure, i,
		); err != nil {
			return fmt.Errorf("create formula line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una receta con sus líneas (nil si no existe).
func (r *FormulaRepo) GetByID(id string) (*entity.Formula, error) {
	query := `
		SELECT id, product_id, name, yield, created_at, updated_at, deleted_at
		FROM formulas WHERE id = $1 AND deleted_at IS NULL`
	var f entity.Formula
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.ProductID, &f.Name, &f.Yield, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	if err := r.loadLines(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByProduct devuelve las recetas del producto ordenadas por fecha de
// creación ascendente, cada una con sus líneas.
func (r *FormulaRepo) ListByProduct(productID string) ([]*entity.Formula, error) {
	query := `
		SELECT id, product_id, name, yield, created_at, updated_at, deleted_at
		FROM formulas
		WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var formulas []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Name, &f.Yield, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		formulas = append(formulas, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range formulas {
		if err := r.loadLines(f); err != nil {
			return nil, err
		}
	}
	return formulas, nil
}

func (r *FormulaRepo) loadLines(f *entity.Formula) error {
	query := `
		SELECT id, formula_id, raw_material_id, quantity_per_lot, unit_measure
		FROM formula_lines WHERE formula_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, f.ID)
	if err != nil {
		return fmt.Errorf("load formula lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.FormulaLine
		if err := rows.Scan(&line.ID, &line.FormulaID, &line.RawMaterialID, &line.QuantityPerLot, &line.UnitMeasure); err != nil {
			return fmt.Errorf("scan formula line: %w", err)
		}
		f.Lines = append(f.Lines, line)
	}
	return rows.Err()
}
