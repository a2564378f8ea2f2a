package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HenryFerreira/bedelias-backend/internal/app/evaluation"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/timeutil"
)

// CatalogoMaterias is the catalog access the eligibility engine needs.
type CatalogoMaterias interface {
	ListarMaterias(ctx context.Context, semestre *int) ([]*models.Materia, error)
	ObtenerPorIDs(ctx context.Context, ids []int64) ([]*models.Materia, error)
}

// LectorHistorial is the history access the eligibility engine needs.
type LectorHistorial interface {
	MapaEstados(ctx context.Context, estudianteID int64) (map[int64]models.EstadoMateria, error)
}

// ElegibilidadService computes eligibility reports and selection
// checks. It owns no state: every call fetches, evaluates and returns.
type ElegibilidadService struct {
	materias  CatalogoMaterias
	historial LectorHistorial
	logger    zerolog.Logger
}

// NewElegibilidadService creates a new eligibility service instance
func NewElegibilidadService(materias CatalogoMaterias, historial LectorHistorial, logger zerolog.Logger) *ElegibilidadService {
	return &ElegibilidadService{
		materias:  materias,
		historial: historial,
		logger:    logger,
	}
}

// ComputarElegibilidad evaluates every catalog materia (optionally
// filtered by semestre) against the student's history. Items keep the
// catalog's (semestre, codigo) order.
func (s *ElegibilidadService) ComputarElegibilidad(ctx context.Context, estudianteID int64, semestre *int) (*dto.ElegibilidadResponse, error) {
	if estudianteID <= 0 {
		return nil, apperrors.NewBadRequestError("identificador de estudiante invalido")
	}

	materias, err := s.materias.ListarMaterias(ctx, semestre)
	if err != nil {
		return nil, fmt.Errorf("error retrieving materias: %w", err)
	}

	estados, err := s.historial.MapaEstados(ctx, estudianteID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving historial: %w", err)
	}
	historial := evaluation.HistorialMap(estados)

	response := &dto.ElegibilidadResponse{
		Items: make([]evaluation.ResultadoMateria, 0, len(materias)),
	}

	for _, materia := range materias {
		resultado := evaluation.EvaluarMateria(materia, historial)
		if resultado.Elegible {
			response.Resumen.Elegibles++
		} else {
			response.Resumen.NoElegibles++
		}
		response.Items = append(response.Items, resultado)
	}
	response.Resumen.TotalMaterias = len(response.Items)

	return response, nil
}

// VerificarSeleccion merges the eligibility evaluation and the
// schedule-conflict report for an explicit candidate selection.
// Candidate ids are deduplicated preserving order; malformed ids are
// discarded and unknown ids are silently absent from the result.
func (s *ElegibilidadService) VerificarSeleccion(ctx context.Context, estudianteID int64, materiaIDs []int64) (*dto.SeleccionResponse, error) {
	if estudianteID <= 0 {
		return nil, apperrors.NewBadRequestError("identificador de estudiante invalido")
	}

	ids := normalizarIDs(materiaIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewBadRequestError("la seleccion no contiene materias validas")
	}

	materias, err := s.materias.ObtenerPorIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving materias: %w", err)
	}

	estados, err := s.historial.MapaEstados(ctx, estudianteID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving historial: %w", err)
	}
	historial := evaluation.HistorialMap(estados)

	// The detail list follows the candidate order, not the fetch order.
	porID := make(map[int64]*models.Materia, len(materias))
	for _, m := range materias {
		porID[m.ID] = m
	}
	ordenadas := make([]*models.Materia, 0, len(ids))
	for _, id := range ids {
		if m, ok := porID[id]; ok {
			ordenadas = append(ordenadas, m)
		}
	}

	response := &dto.SeleccionResponse{
		Materias: make([]dto.MateriaSeleccionada, 0, len(ordenadas)),
	}

	for _, materia := range ordenadas {
		resultado := evaluation.EvaluarMateria(materia, historial)
		if resultado.Elegible {
			response.Resumen.Elegibles++
		} else {
			response.Resumen.NoElegibles++
		}

		minutos, err := evaluation.MinutosMateria(materia)
		if err != nil {
			return nil, err
		}

		horarios := materia.Horarios
		if horarios == nil {
			horarios = []models.Horario{}
		}

		response.Materias = append(response.Materias, dto.MateriaSeleccionada{
			ResultadoMateria:  resultado,
			Horarios:          horarios,
			CargaMinutos:      minutos,
			CargaHorasMateria: timeutil.ToHours(minutos),
		})
	}

	choques, err := evaluation.DetectarChoques(ordenadas)
	if err != nil {
		return nil, err
	}

	response.Conflictos = choques.Choques
	response.Resumen.Seleccionadas = len(ordenadas)
	response.Resumen.Conflictos = len(choques.Choques)
	response.Resumen.CargaHoras = timeutil.ToHours(choques.TotalMinutos)

	s.logger.Debug().
		Int64("estudianteID", estudianteID).
		Int("seleccionadas", response.Resumen.Seleccionadas).
		Int("conflictos", response.Resumen.Conflictos).
		Msg("Selection verified")

	return response, nil
}

// normalizarIDs deduplicates candidate ids preserving first-seen order
// and drops malformed (non-positive) values.
func normalizarIDs(ids []int64) []int64 {
	vistos := make(map[int64]bool, len(ids))
	normalizados := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || vistos[id] {
			continue
		}
		vistos[id] = true
		normalizados = append(normalizados, id)
	}
	return normalizados
}
