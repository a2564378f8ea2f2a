package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/app/repositories"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
)

// EventoHistorialActualizado is published whenever a history entry changes.
const EventoHistorialActualizado = "historial.actualizado"

// HistorialService handles academic history operations
type HistorialService struct {
	historialRepo *repositories.HistorialRepository
	materiaRepo   *repositories.MateriaRepository
	eventos       EventPublisher
}

// NewHistorialService creates a new historial service instance
func NewHistorialService(
	historialRepo *repositories.HistorialRepository,
	materiaRepo *repositories.MateriaRepository,
	eventos EventPublisher,
) *HistorialService {
	return &HistorialService{
		historialRepo: historialRepo,
		materiaRepo:   materiaRepo,
		eventos:       eventos,
	}
}

// ListarHistorial returns the full history of one student.
func (s *HistorialService) ListarHistorial(ctx context.Context, estudianteID int64) ([]*models.Historial, error) {
	if estudianteID <= 0 {
		return nil, apperrors.NewBadRequestError("identificador de estudiante invalido")
	}

	entradas, err := s.historialRepo.ListarPorEstudiante(ctx, estudianteID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving historial: %w", err)
	}

	if entradas == nil {
		entradas = []*models.Historial{}
	}
	return entradas, nil
}

// ActualizarEntrada upserts the student's entry for one materia and
// publishes the update event. The target materia must exist.
func (s *HistorialService) ActualizarEntrada(ctx context.Context, estudianteID int64, req dto.HistorialRequest) (*models.Historial, error) {
	if estudianteID <= 0 {
		return nil, apperrors.NewBadRequestError("identificador de estudiante invalido")
	}
	if !req.Estado.Valido() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("estado desconocido: %s", req.Estado))
	}
	if req.NotaExamen != nil && (*req.NotaExamen < 0 || *req.NotaExamen > 12) {
		return nil, apperrors.NewBadRequestError("la nota de examen debe estar entre 0 y 12")
	}

	if _, err := s.materiaRepo.ObtenerPorID(ctx, req.MateriaID); err != nil {
		if errors.Is(err, apperrors.ErrMateriaNotFound) {
			return nil, apperrors.ErrMateriaNotFound
		}
		return nil, fmt.Errorf("error retrieving materia: %w", err)
	}

	ahora := time.Now().UTC()
	entrada := &models.Historial{
		EstudianteID: estudianteID,
		MateriaID:    req.MateriaID,
		Estado:       req.Estado,
		NotaExamen:   req.NotaExamen,
		Fecha:        &ahora,
	}

	if err := s.historialRepo.Upsert(ctx, entrada); err != nil {
		return nil, err
	}

	s.eventos.Publish(EventoHistorialActualizado, map[string]interface{}{
		"estudianteId": estudianteID,
		"materiaId":    entrada.MateriaID,
		"estado":       entrada.Estado,
	})

	return entrada, nil
}
