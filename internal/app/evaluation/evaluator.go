// Package evaluation holds the pure eligibility and schedule-conflict
// engine. Everything here operates on already-fetched in-memory data
// and keeps no state between calls.
package evaluation

import (
	"fmt"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

// HistorialMap maps materia ID to the student's status on it. It is
// built once per evaluation request and discarded afterwards.
type HistorialMap map[int64]models.EstadoMateria

// NewHistorialMap builds the lookup map from raw history entries.
func NewHistorialMap(entradas []*models.Historial) HistorialMap {
	m := make(HistorialMap, len(entradas))
	for _, e := range entradas {
		m[e.MateriaID] = e.Estado
	}
	return m
}

// Estado returns the student's status on a materia. A materia that was
// never attempted has no entry and defaults to PENDIENTE explicitly.
func (h HistorialMap) Estado(materiaID int64) models.EstadoMateria {
	if estado, ok := h[materiaID]; ok {
		return estado
	}
	return models.EstadoPendiente
}

// PreviaCumplida decides whether a student status satisfies one
// prerequisite kind. Unknown kinds fail closed.
func PreviaCumplida(tipo models.TipoPrevia, estado models.EstadoMateria) bool {
	switch tipo {
	case models.TipoPreviaCurso:
		return estado.Orden() >= models.EstadoCursado.Orden()
	case models.TipoPreviaExamen:
		return estado.Orden() >= models.EstadoExonerado.Orden()
	default:
		return false
	}
}

// ResultadoPrevia is the per-prerequisite detail of an evaluation.
type ResultadoPrevia struct {
	Tipo      models.TipoPrevia    `json:"tipo"`
	MateriaID int64                `json:"materiaId"`
	Materia   string               `json:"materia"`
	Estado    models.EstadoMateria `json:"estado"`
	Cumplida  bool                 `json:"cumplida"`
}

// ResultadoMateria is the evaluation of one materia for one student.
// Motivos holds only blocking reasons, so Elegible == (len(Motivos) == 0).
// An already-exonerated materia keeps its evaluation and gets an
// informational Nota instead of a blocking reason.
type ResultadoMateria struct {
	Materia  models.MateriaResumen `json:"materia"`
	Estado   models.EstadoMateria  `json:"estadoActual"`
	Elegible bool                  `json:"elegible"`
	Motivos  []string              `json:"motivos"`
	Nota     string                `json:"nota,omitempty"`
	Previas  []ResultadoPrevia     `json:"previas"`
}

// EvaluarMateria resolves every prerequisite of the materia against the
// student's history and decides eligibility. The per-prerequisite
// detail preserves the materia's prerequisite order.
func EvaluarMateria(m *models.Materia, historial HistorialMap) ResultadoMateria {
	resultado := ResultadoMateria{
		Materia: m.Resumen(),
		Estado:  historial.Estado(m.ID),
		Motivos: []string{},
		Previas: make([]ResultadoPrevia, 0, len(m.Previas)),
	}

	if resultado.Estado == models.EstadoExonerado {
		resultado.Nota = "la materia ya fue exonerada"
	}

	for _, previa := range m.Previas {
		estadoPrevia := historial.Estado(previa.MateriaID)
		cumplida := PreviaCumplida(previa.Tipo, estadoPrevia)

		resultado.Previas = append(resultado.Previas, ResultadoPrevia{
			Tipo:      previa.Tipo,
			MateriaID: previa.MateriaID,
			Materia:   previa.Etiqueta(),
			Estado:    estadoPrevia,
			Cumplida:  cumplida,
		})

		if !cumplida {
			resultado.Motivos = append(resultado.Motivos, motivoPrevia(previa))
		}
	}

	resultado.Elegible = len(resultado.Motivos) == 0
	return resultado
}

// motivoPrevia builds the human-readable reason for an unmet
// prerequisite, with a distinct template per kind.
func motivoPrevia(previa models.Previa) string {
	switch previa.Tipo {
	case models.TipoPreviaExamen:
		return fmt.Sprintf("falta aprobar el examen de %s", previa.Etiqueta())
	case models.TipoPreviaCurso:
		return fmt.Sprintf("falta aprobar el curso de %s", previa.Etiqueta())
	default:
		return fmt.Sprintf("previa de tipo desconocido sobre %s", previa.Etiqueta())
	}
}
