package models

// RolUsuario defines the user role type
type RolUsuario string

const (
	RolEstudiante    RolUsuario = "ESTUDIANTE"
	RolAdministrador RolUsuario = "ADMINISTRADOR"
)

// TipoPrevia defines the kind of prerequisite a materia can demand.
type TipoPrevia string

const (
	// TipoPreviaCurso requires the course part of the target materia to
	// be passed (CURSADO or better).
	TipoPreviaCurso TipoPrevia = "CURSO_APROBADO"
	// TipoPreviaExamen requires the target materia's exam to be passed
	// (EXONERADO).
	TipoPreviaExamen TipoPrevia = "EXAMEN_APROBADO"
)

// EstadoMateria is the academic status of a student on one materia.
type EstadoMateria string

const (
	EstadoPendiente EstadoMateria = "PENDIENTE"
	EstadoCursando  EstadoMateria = "CURSANDO"
	EstadoCursado   EstadoMateria = "CURSADO"
	EstadoAExamen   EstadoMateria = "A_EXAMEN"
	EstadoExonerado EstadoMateria = "EXONERADO"
)

// estadoOrden is the total order used for prerequisite comparison.
// A_EXAMEN sits at the CURSADO level: the course part is complete and
// only the exam is outstanding.
var estadoOrden = map[EstadoMateria]int{
	EstadoPendiente: 0,
	EstadoCursando:  1,
	EstadoCursado:   2,
	EstadoAExamen:   2,
	EstadoExonerado: 3,
}

// Orden returns the ordinal of the status on the comparison scale.
// Unknown statuses map to the PENDIENTE ordinal, so they never satisfy
// a prerequisite.
func (e EstadoMateria) Orden() int {
	return estadoOrden[e]
}

// Valido reports whether the status is one of the persisted enum values.
func (e EstadoMateria) Valido() bool {
	_, ok := estadoOrden[e]
	return ok
}

// DiaSemana is a teaching day of the week.
type DiaSemana string

const (
	DiaLunes     DiaSemana = "LUN"
	DiaMartes    DiaSemana = "MAR"
	DiaMiercoles DiaSemana = "MIE"
	DiaJueves    DiaSemana = "JUE"
	DiaViernes   DiaSemana = "VIE"
	DiaSabado    DiaSemana = "SAB"
)

// DiasSemana lists the teaching days in fixed week order. Conflict
// reports iterate days in this order so output is reproducible.
var DiasSemana = []DiaSemana{DiaLunes, DiaMartes, DiaMiercoles, DiaJueves, DiaViernes, DiaSabado}

// Valido reports whether the day is a known teaching day.
func (d DiaSemana) Valido() bool {
	for _, dia := range DiasSemana {
		if d == dia {
			return true
		}
	}
	return false
}
