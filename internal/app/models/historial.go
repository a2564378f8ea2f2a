package models

import "time"

// Historial is one academic history entry: the status a student holds
// on one materia. The storage layer enforces at most one entry per
// (estudiante, materia) pair.
type Historial struct {
	ID           int64         `json:"id" db:"id"`
	EstudianteID int64         `json:"estudianteId" db:"estudiante_id"`
	MateriaID    int64         `json:"materiaId" db:"materia_id"`
	Estado       EstadoMateria `json:"estado" db:"estado"`
	NotaExamen   *float64      `json:"notaExamen,omitempty" db:"nota_examen"`
	Fecha        *time.Time    `json:"fecha,omitempty" db:"fecha"`

	// Relation (populated when needed)
	Materia *MateriaResumen `json:"materia,omitempty"`
}
