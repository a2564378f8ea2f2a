package dto

import "github.com/HenryFerreira/bedelias-backend/internal/app/models"

// PreviaRequest is one prerequisite reference in a materia payload.
type PreviaRequest struct {
	Tipo      models.TipoPrevia `json:"tipo" binding:"required"`
	MateriaID int64             `json:"materiaId" binding:"required"`
}

// HorarioRequest is one weekly slot in a materia payload.
type HorarioRequest struct {
	Dia        models.DiaSemana `json:"dia" binding:"required"`
	HoraInicio string           `json:"horaInicio" binding:"required"`
	HoraFin    string           `json:"horaFin" binding:"required"`
}

// MateriaRequest is the payload for creating or updating a materia.
type MateriaRequest struct {
	Codigo   string           `json:"codigo" binding:"required"`
	Nombre   string           `json:"nombre" binding:"required"`
	Creditos int              `json:"creditos"`
	Semestre int              `json:"semestre" binding:"required,min=1"`
	Previas  []PreviaRequest  `json:"previas"`
	Horarios []HorarioRequest `json:"horarios"`
}

// HistorialRequest is the payload for upserting a history entry.
type HistorialRequest struct {
	MateriaID  int64                `json:"materiaId" binding:"required"`
	Estado     models.EstadoMateria `json:"estado" binding:"required"`
	NotaExamen *float64             `json:"notaExamen"`
}
