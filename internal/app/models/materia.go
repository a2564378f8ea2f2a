package models

import "fmt"

// Materia represents a course in the catalog, with its prerequisites
// and weekly schedule slots.
type Materia struct {
	ID       int64     `json:"id" db:"id"`
	Codigo   string    `json:"codigo" db:"codigo"`
	Nombre   string    `json:"nombre" db:"nombre"`
	Creditos int       `json:"creditos" db:"creditos"`
	Semestre int       `json:"semestre" db:"semestre"`
	Previas  []Previa  `json:"previas"`
	Horarios []Horario `json:"horarios"`
}

// MateriaResumen is the summary projection of a materia used in
// evaluation results and resolved prerequisite references.
type MateriaResumen struct {
	ID       int64  `json:"id"`
	Codigo   string `json:"codigo"`
	Nombre   string `json:"nombre"`
	Semestre int    `json:"semestre"`
}

// Resumen returns the summary projection of the materia.
func (m *Materia) Resumen() MateriaResumen {
	return MateriaResumen{
		ID:       m.ID,
		Codigo:   m.Codigo,
		Nombre:   m.Nombre,
		Semestre: m.Semestre,
	}
}

// Previa is a typed prerequisite reference. The target is always
// identified by MateriaID; Materia carries the resolved summary when
// the repository joined it, and stays nil for a raw reference.
type Previa struct {
	Tipo      TipoPrevia      `json:"tipo" db:"tipo"`
	MateriaID int64           `json:"materiaId" db:"previa_id"`
	Materia   *MateriaResumen `json:"materia,omitempty"`
}

// Etiqueta returns the label used in human-readable reasons: the
// resolved code when available, otherwise the raw identifier.
func (p Previa) Etiqueta() string {
	if p.Materia != nil {
		return p.Materia.Codigo
	}
	return fmt.Sprintf("materia %d", p.MateriaID)
}

// Horario is one weekly schedule slot of a materia. Times are 24-hour
// HH:MM with HoraInicio < HoraFin.
type Horario struct {
	Dia        DiaSemana `json:"dia" db:"dia"`
	HoraInicio string    `json:"horaInicio" db:"hora_inicio"`
	HoraFin    string    `json:"horaFin" db:"hora_fin"`
}
