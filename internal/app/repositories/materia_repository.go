package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/dberrors"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/logger"
)

// MateriaRepository handles database operations for materias, their
// previas and horarios.
type MateriaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMateriaRepository creates a new materia repository
func NewMateriaRepository(db *pgxpool.Pool) *MateriaRepository {
	return &MateriaRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListarMaterias retrieves the catalog, optionally filtered by
// semestre, ordered by (semestre, codigo). Previas come back with the
// resolved summary of their target materia.
func (r *MateriaRepository) ListarMaterias(ctx context.Context, semestre *int) ([]*models.Materia, error) {
	query := r.sb.Select("id", "codigo", "nombre", "creditos", "semestre").
		From("materias").
		OrderBy("semestre ASC", "codigo ASC")

	if semestre != nil {
		query = query.Where(squirrel.Eq{"semestre": *semestre})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list materias query: %w", err)
	}

	materias, err := r.scanMaterias(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	if err := r.cargarRelaciones(ctx, materias); err != nil {
		return nil, err
	}

	return materias, nil
}

// ObtenerPorIDs retrieves the materias matching the given identifiers.
// Unknown identifiers are simply absent from the result set.
func (r *MateriaRepository) ObtenerPorIDs(ctx context.Context, ids []int64) ([]*models.Materia, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql := `
		SELECT id, codigo, nombre, creditos, semestre
		FROM materias
		WHERE id = ANY($1)
	`

	materias, err := r.scanMaterias(ctx, sql, ids)
	if err != nil {
		return nil, err
	}

	if err := r.cargarRelaciones(ctx, materias); err != nil {
		return nil, err
	}

	return materias, nil
}

// ObtenerPorID retrieves one materia with its previas and horarios.
func (r *MateriaRepository) ObtenerPorID(ctx context.Context, id int64) (*models.Materia, error) {
	sql := `
		SELECT id, codigo, nombre, creditos, semestre
		FROM materias
		WHERE id = $1
	`

	var materia models.Materia
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&materia.ID,
		&materia.Codigo,
		&materia.Nombre,
		&materia.Creditos,
		&materia.Semestre,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMateriaNotFound
		}
		return nil, fmt.Errorf("error retrieving materia: %w", err)
	}

	materias := []*models.Materia{&materia}
	if err := r.cargarRelaciones(ctx, materias); err != nil {
		return nil, err
	}

	return &materia, nil
}

// Crear inserts a materia with its previas and horarios in one
// transaction.
func (r *MateriaRepository) Crear(ctx context.Context, materia *models.Materia) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO materias (codigo, nombre, creditos, semestre)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, materia.Codigo, materia.Nombre, materia.Creditos, materia.Semestre).Scan(&materia.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "materias_codigo_key") {
			return apperrors.ErrMateriaAlreadyExists
		}
		return fmt.Errorf("error creating materia: %w", err)
	}

	if err := r.insertarRelaciones(ctx, tx, materia); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Actualizar replaces a materia's fields, previas and horarios.
func (r *MateriaRepository) Actualizar(ctx context.Context, materia *models.Materia) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE materias
		SET codigo = $1, nombre = $2, creditos = $3, semestre = $4
		WHERE id = $5
	`, materia.Codigo, materia.Nombre, materia.Creditos, materia.Semestre, materia.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "materias_codigo_key") {
			return apperrors.ErrMateriaAlreadyExists
		}
		return fmt.Errorf("error updating materia: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMateriaNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM previas WHERE materia_id = $1`, materia.ID); err != nil {
		return fmt.Errorf("error clearing previas: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM horarios WHERE materia_id = $1`, materia.ID); err != nil {
		return fmt.Errorf("error clearing horarios: %w", err)
	}

	if err := r.insertarRelaciones(ctx, tx, materia); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Eliminar deletes a materia. Deletion fails while other materias list
// it as previa or historial entries reference it.
func (r *MateriaRepository) Eliminar(ctx context.Context, id int64) error {
	var referenciada bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM previas WHERE previa_id = $1)
		    OR EXISTS(SELECT 1 FROM historial WHERE materia_id = $1)
	`, id).Scan(&referenciada)
	if err != nil {
		return fmt.Errorf("error checking materia references: %w", err)
	}
	if referenciada {
		return apperrors.ErrMateriaHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM materias WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrMateriaHasRelations
		}
		return fmt.Errorf("error deleting materia: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMateriaNotFound
	}

	return nil
}

// ExistePorCodigo checks if a materia exists with the given codigo,
// excluding an optional id (for updates).
func (r *MateriaRepository) ExistePorCodigo(ctx context.Context, codigo string, excluirID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM materias WHERE codigo = $1 AND id != $2)
	`, codigo, excluirID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking materia existence: %w", err)
	}
	return exists, nil
}

func (r *MateriaRepository) scanMaterias(ctx context.Context, sql string, args ...any) ([]*models.Materia, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying materias: %w", err)
	}
	defer rows.Close()

	var materias []*models.Materia
	for rows.Next() {
		var materia models.Materia
		if err := rows.Scan(
			&materia.ID,
			&materia.Codigo,
			&materia.Nombre,
			&materia.Creditos,
			&materia.Semestre,
		); err != nil {
			return nil, err
		}
		materia.Previas = []models.Previa{}
		materia.Horarios = []models.Horario{}
		materias = append(materias, &materia)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return materias, nil
}

// cargarRelaciones attaches previas (with resolved target summaries)
// and horarios to the given materias in two batched queries.
func (r *MateriaRepository) cargarRelaciones(ctx context.Context, materias []*models.Materia) error {
	if len(materias) == 0 {
		return nil
	}

	porID := make(map[int64]*models.Materia, len(materias))
	ids := make([]int64, 0, len(materias))
	for _, m := range materias {
		porID[m.ID] = m
		ids = append(ids, m.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT p.materia_id, p.tipo, p.previa_id, m.codigo, m.nombre, m.semestre
		FROM previas p
		JOIN materias m ON m.id = p.previa_id
		WHERE p.materia_id = ANY($1)
		ORDER BY p.materia_id, p.posicion
	`, ids)
	if err != nil {
		return fmt.Errorf("error querying previas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var materiaID int64
		var previa models.Previa
		var resumen models.MateriaResumen
		if err := rows.Scan(&materiaID, &previa.Tipo, &previa.MateriaID,
			&resumen.Codigo, &resumen.Nombre, &resumen.Semestre); err != nil {
			return err
		}
		resumen.ID = previa.MateriaID
		previa.Materia = &resumen
		if m, ok := porID[materiaID]; ok {
			m.Previas = append(m.Previas, previa)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	rows, err = r.db.Query(ctx, `
		SELECT materia_id, dia, hora_inicio, hora_fin
		FROM horarios
		WHERE materia_id = ANY($1)
		ORDER BY materia_id, id
	`, ids)
	if err != nil {
		return fmt.Errorf("error querying horarios: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var materiaID int64
		var horario models.Horario
		if err := rows.Scan(&materiaID, &horario.Dia, &horario.HoraInicio, &horario.HoraFin); err != nil {
			return err
		}
		if m, ok := porID[materiaID]; ok {
			m.Horarios = append(m.Horarios, horario)
		}
	}

	return rows.Err()
}

// insertarRelaciones inserts the previas and horarios of a materia
// inside an open transaction.
func (r *MateriaRepository) insertarRelaciones(ctx context.Context, tx pgx.Tx, materia *models.Materia) error {
	for i, previa := range materia.Previas {
		_, err := tx.Exec(ctx, `
			INSERT INTO previas (materia_id, tipo, previa_id, posicion)
			VALUES ($1, $2, $3, $4)
		`, materia.ID, previa.Tipo, previa.MateriaID, i)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				logger.Warn().Int64("materiaID", materia.ID).Int64("previaID", previa.MateriaID).
					Msg("Previa references unknown materia")
				return apperrors.NewBadRequestError(
					fmt.Sprintf("previa %d no existe en el catalogo", previa.MateriaID))
			}
			return fmt.Errorf("error inserting previa: %w", err)
		}
	}

	for _, horario := range materia.Horarios {
		_, err := tx.Exec(ctx, `
			INSERT INTO horarios (materia_id, dia, hora_inicio, hora_fin)
			VALUES ($1, $2, $3, $4)
		`, materia.ID, horario.Dia, horario.HoraInicio, horario.HoraFin)
		if err != nil {
			return fmt.Errorf("error inserting horario: %w", err)
		}
	}

	return nil
}
