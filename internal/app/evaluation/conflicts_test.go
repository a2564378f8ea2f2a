package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

func materiaConHorarios(id int64, codigo string, horarios ...models.Horario) *models.Materia {
	return &models.Materia{ID: id, Codigo: codigo, Nombre: codigo, Horarios: horarios}
}

func TestDetectarChoquesSolapeSimple(t *testing.T) {
	materias := []*models.Materia{
		materiaConHorarios(1, "ALG1", models.Horario{Dia: models.DiaLunes, HoraInicio: "18:00", HoraFin: "20:00"}),
		materiaConHorarios(2, "CAL1", models.Horario{Dia: models.DiaLunes, HoraInicio: "19:00", HoraFin: "21:00"}),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)

	require.Len(t, resultado.Choques, 1)
	choque := resultado.Choques[0]
	assert.Equal(t, models.DiaLunes, choque.Dia)
	assert.Equal(t, "ALG1", choque.MateriaA.Codigo)
	assert.Equal(t, "CAL1", choque.MateriaB.Codigo)
	assert.Equal(t, 60, choque.SolapeMinutos)
	assert.Equal(t, "19:00–20:00", choque.Solape)

	// Total load is the sum of declared minutes, overlap not subtracted.
	assert.Equal(t, 240, resultado.TotalMinutos)
}

func TestDetectarChoquesDiasDistintos(t *testing.T) {
	materias := []*models.Materia{
		materiaConHorarios(1, "ALG1", models.Horario{Dia: models.DiaLunes, HoraInicio: "18:00", HoraFin: "20:00"}),
		materiaConHorarios(2, "CAL1", models.Horario{Dia: models.DiaMartes, HoraInicio: "18:00", HoraFin: "20:00"}),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)
	assert.Empty(t, resultado.Choques)
}

func TestDetectarChoquesHorariosAdyacentes(t *testing.T) {
	materias := []*models.Materia{
		materiaConHorarios(1, "ALG1", models.Horario{Dia: models.DiaLunes, HoraInicio: "09:00", HoraFin: "10:00"}),
		materiaConHorarios(2, "CAL1", models.Horario{Dia: models.DiaLunes, HoraInicio: "10:00", HoraFin: "11:00"}),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)
	assert.Empty(t, resultado.Choques)
}

func TestDetectarChoquesMultiplesPorDia(t *testing.T) {
	// Three slots on the same day, all pairwise overlapping.
	materias := []*models.Materia{
		materiaConHorarios(1, "A", models.Horario{Dia: models.DiaViernes, HoraInicio: "10:00", HoraFin: "13:00"}),
		materiaConHorarios(2, "B", models.Horario{Dia: models.DiaViernes, HoraInicio: "11:00", HoraFin: "14:00"}),
		materiaConHorarios(3, "C", models.Horario{Dia: models.DiaViernes, HoraInicio: "12:00", HoraFin: "15:00"}),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)
	require.Len(t, resultado.Choques, 3)

	// Sweep order: A-B, A-C, B-C.
	assert.Equal(t, "A", resultado.Choques[0].MateriaA.Codigo)
	assert.Equal(t, "B", resultado.Choques[0].MateriaB.Codigo)
	assert.Equal(t, "A", resultado.Choques[1].MateriaA.Codigo)
	assert.Equal(t, "C", resultado.Choques[1].MateriaB.Codigo)
	assert.Equal(t, "B", resultado.Choques[2].MateriaA.Codigo)
	assert.Equal(t, "C", resultado.Choques[2].MateriaB.Codigo)
}

func TestDetectarChoquesCorteMonotono(t *testing.T) {
	// The second slot ends before the third starts; the sweep must not
	// pair slots that cannot overlap.
	materias := []*models.Materia{
		materiaConHorarios(1, "A", models.Horario{Dia: models.DiaLunes, HoraInicio: "08:00", HoraFin: "09:00"}),
		materiaConHorarios(2, "B", models.Horario{Dia: models.DiaLunes, HoraInicio: "08:30", HoraFin: "09:30"}),
		materiaConHorarios(3, "C", models.Horario{Dia: models.DiaLunes, HoraInicio: "12:00", HoraFin: "13:00"}),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)
	require.Len(t, resultado.Choques, 1)
	assert.Equal(t, "A", resultado.Choques[0].MateriaA.Codigo)
	assert.Equal(t, "B", resultado.Choques[0].MateriaB.Codigo)
	assert.Equal(t, 30, resultado.Choques[0].SolapeMinutos)
}

func TestDetectarChoquesOrdenDeDias(t *testing.T) {
	// Conflicts on several days come out in fixed week order even if
	// the input interleaves the days.
	materias := []*models.Materia{
		materiaConHorarios(1, "A",
			models.Horario{Dia: models.DiaMiercoles, HoraInicio: "10:00", HoraFin: "12:00"},
			models.Horario{Dia: models.DiaLunes, HoraInicio: "10:00", HoraFin: "12:00"},
		),
		materiaConHorarios(2, "B",
			models.Horario{Dia: models.DiaLunes, HoraInicio: "11:00", HoraFin: "13:00"},
			models.Horario{Dia: models.DiaMiercoles, HoraInicio: "11:00", HoraFin: "13:00"},
		),
	}

	resultado, err := DetectarChoques(materias)
	require.NoError(t, err)
	require.Len(t, resultado.Choques, 2)
	assert.Equal(t, models.DiaLunes, resultado.Choques[0].Dia)
	assert.Equal(t, models.DiaMiercoles, resultado.Choques[1].Dia)
}

func TestDetectarChoquesHorarioInvalido(t *testing.T) {
	materias := []*models.Materia{
		materiaConHorarios(1, "A", models.Horario{Dia: models.DiaLunes, HoraInicio: "25:00", HoraFin: "26:00"}),
	}

	_, err := DetectarChoques(materias)
	assert.Error(t, err)
}

func TestMinutosMateria(t *testing.T) {
	m := materiaConHorarios(1, "A",
		models.Horario{Dia: models.DiaLunes, HoraInicio: "10:00", HoraFin: "11:30"},
		models.Horario{Dia: models.DiaJueves, HoraInicio: "10:00", HoraFin: "10:45"},
	)

	minutos, err := MinutosMateria(m)
	require.NoError(t, err)
	assert.Equal(t, 135, minutos)
}
