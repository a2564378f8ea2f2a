package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/app/repositories"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/timeutil"
)

// Domain event types published by the materia service.
const (
	EventoMateriaCreada      = "materia.creada"
	EventoMateriaActualizada = "materia.actualizada"
	EventoMateriaEliminada   = "materia.eliminada"
)

// EventPublisher fans domain events out to the WebSocket layer.
type EventPublisher interface {
	Publish(tipo string, payload interface{})
}

// MateriaService handles catalog operations
type MateriaService struct {
	materiaRepo *repositories.MateriaRepository
	eventos     EventPublisher
}

// NewMateriaService creates a new materia service instance
func NewMateriaService(materiaRepo *repositories.MateriaRepository, eventos EventPublisher) *MateriaService {
	return &MateriaService{
		materiaRepo: materiaRepo,
		eventos:     eventos,
	}
}

// ListarMaterias returns the catalog, optionally filtered by semestre.
func (s *MateriaService) ListarMaterias(ctx context.Context, semestre *int) ([]*models.Materia, error) {
	if semestre != nil && *semestre < 1 {
		return nil, apperrors.NewBadRequestError("semestre must be positive")
	}

	materias, err := s.materiaRepo.ListarMaterias(ctx, semestre)
	if err != nil {
		return nil, fmt.Errorf("error retrieving materias: %w", err)
	}
	return materias, nil
}

// ObtenerMateria returns one materia by id.
func (s *MateriaService) ObtenerMateria(ctx context.Context, id int64) (*models.Materia, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid materia ID")
	}

	materia, err := s.materiaRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return materia, nil
}

// CrearMateria validates and creates a materia, then publishes the
// creation event.
func (s *MateriaService) CrearMateria(ctx context.Context, req dto.MateriaRequest) (*models.Materia, error) {
	materia, err := materiaFromRequest(req, 0)
	if err != nil {
		return nil, err
	}

	if err := s.materiaRepo.Crear(ctx, materia); err != nil {
		return nil, err
	}

	s.eventos.Publish(EventoMateriaCreada, materia.Resumen())
	return materia, nil
}

// ActualizarMateria validates and replaces a materia, then publishes
// the update event.
func (s *MateriaService) ActualizarMateria(ctx context.Context, id int64, req dto.MateriaRequest) (*models.Materia, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid materia ID")
	}

	materia, err := materiaFromRequest(req, id)
	if err != nil {
		return nil, err
	}
	materia.ID = id

	if err := s.materiaRepo.Actualizar(ctx, materia); err != nil {
		return nil, err
	}

	s.eventos.Publish(EventoMateriaActualizada, materia.Resumen())
	return materia, nil
}

// EliminarMateria deletes a materia and publishes the deletion event.
func (s *MateriaService) EliminarMateria(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid materia ID")
	}

	if err := s.materiaRepo.Eliminar(ctx, id); err != nil {
		return err
	}

	s.eventos.Publish(EventoMateriaEliminada, map[string]int64{"id": id})
	return nil
}

// materiaFromRequest validates the payload and builds the model.
// Duplicate horarios (same dia, inicio and fin) are dropped, and a
// previa can never reference the materia itself.
func materiaFromRequest(req dto.MateriaRequest, id int64) (*models.Materia, error) {
	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))
	if codigo == "" {
		return nil, apperrors.NewBadRequestError("codigo cannot be empty")
	}
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, apperrors.NewBadRequestError("nombre cannot be empty")
	}
	if req.Creditos < 0 {
		return nil, apperrors.NewBadRequestError("creditos cannot be negative")
	}
	if req.Semestre < 1 {
		return nil, apperrors.NewBadRequestError("semestre must be at least 1")
	}

	materia := &models.Materia{
		Codigo:   codigo,
		Nombre:   strings.TrimSpace(req.Nombre),
		Creditos: req.Creditos,
		Semestre: req.Semestre,
		Previas:  make([]models.Previa, 0, len(req.Previas)),
		Horarios: make([]models.Horario, 0, len(req.Horarios)),
	}

	for _, previa := range req.Previas {
		if previa.Tipo != models.TipoPreviaCurso && previa.Tipo != models.TipoPreviaExamen {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown previa tipo %q", previa.Tipo))
		}
		if previa.MateriaID <= 0 {
			return nil, apperrors.NewBadRequestError("invalid previa materia ID")
		}
		if id != 0 && previa.MateriaID == id {
			return nil, apperrors.NewBadRequestError("a materia cannot be its own previa")
		}
		materia.Previas = append(materia.Previas, models.Previa{
			Tipo:      previa.Tipo,
			MateriaID: previa.MateriaID,
		})
	}

	vistos := make(map[string]bool, len(req.Horarios))
	for _, horario := range req.Horarios {
		if !horario.Dia.Valido() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown dia %q", horario.Dia))
		}
		inicio, err := timeutil.ParseHHMM(horario.HoraInicio)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		fin, err := timeutil.ParseHHMM(horario.HoraFin)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		if inicio >= fin {
			return nil, apperrors.NewBadRequestError("horario must start before it ends")
		}

		clave := fmt.Sprintf("%s|%s|%s", horario.Dia, horario.HoraInicio, horario.HoraFin)
		if vistos[clave] {
			continue
		}
		vistos[clave] = true

		materia.Horarios = append(materia.Horarios, models.Horario{
			Dia:        horario.Dia,
			HoraInicio: horario.HoraInicio,
			HoraFin:    horario.HoraFin,
		})
	}

	return materia, nil
}
