package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

// HistorialRepository handles database operations for academic history
// entries. The (estudiante_id, materia_id) pair is unique.
type HistorialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHistorialRepository creates a new historial repository
func NewHistorialRepository(db *pgxpool.Pool) *HistorialRepository {
	return &HistorialRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListarPorEstudiante retrieves the full history of one student with
// the target materia summaries attached.
func (r *HistorialRepository) ListarPorEstudiante(ctx context.Context, estudianteID int64) ([]*models.Historial, error) {
	sql, args, err := r.sb.Select(
		"h.id", "h.estudiante_id", "h.materia_id", "h.estado", "h.nota_examen", "h.fecha",
		"m.codigo", "m.nombre", "m.semestre").
		From("historial h").
		Join("materias m ON m.id = h.materia_id").
		Where(squirrel.Eq{"h.estudiante_id": estudianteID}).
		OrderBy("m.semestre ASC", "m.codigo ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build historial query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying historial: %w", err)
	}
	defer rows.Close()

	var entradas []*models.Historial
	for rows.Next() {
		var entrada models.Historial
		var resumen models.MateriaResumen
		if err := rows.Scan(
			&entrada.ID,
			&entrada.EstudianteID,
			&entrada.MateriaID,
			&entrada.Estado,
			&entrada.NotaExamen,
			&entrada.Fecha,
			&resumen.Codigo,
			&resumen.Nombre,
			&resumen.Semestre,
		); err != nil {
			return nil, err
		}
		resumen.ID = entrada.MateriaID
		entrada.Materia = &resumen
		entradas = append(entradas, &entrada)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entradas, nil
}

// MapaEstados builds the materia -> estado lookup for one student in a
// single pass. Only the fields the evaluator needs are selected.
func (r *HistorialRepository) MapaEstados(ctx context.Context, estudianteID int64) (map[int64]models.EstadoMateria, error) {
	rows, err := r.db.Query(ctx, `
		SELECT materia_id, estado
		FROM historial
		WHERE estudiante_id = $1
	`, estudianteID)
	if err != nil {
		return nil, fmt.Errorf("error querying historial estados: %w", err)
	}
	defer rows.Close()

	estados := make(map[int64]models.EstadoMateria)
	for rows.Next() {
		var materiaID int64
		var estado models.EstadoMateria
		if err := rows.Scan(&materiaID, &estado); err != nil {
			return nil, err
		}
		estados[materiaID] = estado
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return estados, nil
}

// Upsert inserts or replaces the student's entry for a materia,
// keeping the one-entry-per-(estudiante, materia) invariant in the
// database.
func (r *HistorialRepository) Upsert(ctx context.Context, entrada *models.Historial) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO historial (estudiante_id, materia_id, estado, nota_examen, fecha)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (estudiante_id, materia_id)
		DO UPDATE SET estado = EXCLUDED.estado,
		              nota_examen = EXCLUDED.nota_examen,
		              fecha = EXCLUDED.fecha
		RETURNING id
	`, entrada.EstudianteID, entrada.MateriaID, entrada.Estado, entrada.NotaExamen, entrada.Fecha).
		Scan(&entrada.ID)
	if err != nil {
		return fmt.Errorf("error upserting historial entry: %w", err)
	}

	return nil
}
