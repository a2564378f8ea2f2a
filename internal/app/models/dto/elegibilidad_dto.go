package dto

import (
	"github.com/HenryFerreira/bedelias-backend/internal/app/evaluation"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

// ResumenElegibilidad summarises an eligibility run over the catalog.
// Elegibles + NoElegibles always equals TotalMaterias.
type ResumenElegibilidad struct {
	TotalMaterias int `json:"totalMaterias"`
	Elegibles     int `json:"elegibles"`
	NoElegibles   int `json:"noElegibles"`
}

// ElegibilidadResponse is the full eligibility report for one student.
type ElegibilidadResponse struct {
	Resumen ResumenElegibilidad           `json:"resumen"`
	Items   []evaluation.ResultadoMateria `json:"items"`
}

// MateriaSeleccionada is the per-materia detail of a selection check:
// the eligibility evaluation plus raw schedule and declared load.
type MateriaSeleccionada struct {
	evaluation.ResultadoMateria
	Horarios          []models.Horario `json:"horarios"`
	CargaMinutos      int              `json:"cargaMinutos"`
	CargaHorasMateria float64          `json:"cargaHorasMateria"`
}

// ResumenSeleccion summarises a selection check. CargaHoras sums the
// declared per-materia loads without subtracting overlapping time.
type ResumenSeleccion struct {
	Seleccionadas int     `json:"seleccionadas"`
	Elegibles     int     `json:"elegibles"`
	NoElegibles   int     `json:"noElegibles"`
	Conflictos    int     `json:"conflictos"`
	CargaHoras    float64 `json:"cargaHoras"`
}

// SeleccionResponse is the merged eligibility and conflict report for
// an explicit candidate selection.
type SeleccionResponse struct {
	Resumen    ResumenSeleccion      `json:"resumen"`
	Conflictos []evaluation.Choque   `json:"conflictos"`
	Materias   []MateriaSeleccionada `json:"materias"`
}

// SeleccionRequest is the payload for a selection check.
type SeleccionRequest struct {
	MateriaIDs []int64 `json:"materiaIds"`
}
