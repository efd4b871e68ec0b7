package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/domain"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, name, stock_actual, stock_min, unit_measure, status, created_at, updated_at, deleted_at`

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(material *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, name, stock_actual, stock_min, unit_measure, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.StockActual, material.StockMin,
		material.UnitMeasure, material.Status, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create raw material: %w", err)
	}
	return nil
}

func (r *RawMaterialRepo) scanOne(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.Name, &m.StockActual, &m.StockMin, &m.UnitMeasure,
		&m.Status, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan raw material: %w", err)
	}
	return &m, nil
}

// GetByID obtiene una materia prima por id (nil si no existe o está borrada).
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
// La re-verificación y el consumo deben hacerse con este lock sostenido.
func (r *RawMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// UpdateStock actualiza el agregado de stock. Solo el ledger de inventario
// debe invocarlo, dentro de una transacción.
func (r *RawMaterialRepo) UpdateStock(materialID string, stock decimal.Decimal) error {
	query := `UPDATE raw_materials SET stock_actual = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, materialID, stock)
	if err != nil {
		return fmt.Errorf("update raw material stock: %w", err)
	}
	return nil
}

// UpdateStatus habilita o deshabilita la materia prima.
func (r *RawMaterialRepo) UpdateStatus(materialID, status string) error {
	query := `UPDATE raw_materials SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, materialID, status)
	if err != nil {
		return fmt.Errorf("update raw material status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las materias primas paginadas por nombre.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + ` FROM raw_materials
		WHERE deleted_at IS NULL
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(
			&m.ID, &m.Name, &m.StockActual, &m.StockMin, &m.UnitMeasure,
			&m.Status, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}

// SoftDelete marca la materia prima como borrada.
func (r *RawMaterialRepo) SoftDelete(id string) error {
	query := `UPDATE raw_materials SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
