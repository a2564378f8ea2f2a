package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

func materiaConPrevias(previas ...models.Previa) *models.Materia {
	return &models.Materia{
		ID:       100,
		Codigo:   "FIS2",
		Nombre:   "Física 2",
		Semestre: 3,
		Previas:  previas,
	}
}

func TestHistorialMapEstadoPorDefecto(t *testing.T) {
	h := NewHistorialMap([]*models.Historial{
		{MateriaID: 1, Estado: models.EstadoCursado},
	})

	assert.Equal(t, models.EstadoCursado, h.Estado(1))
	// Never-attempted materias default to PENDIENTE.
	assert.Equal(t, models.EstadoPendiente, h.Estado(99))
}

func TestPreviaCumplida(t *testing.T) {
	cases := []struct {
		tipo   models.TipoPrevia
		estado models.EstadoMateria
		want   bool
	}{
		{models.TipoPreviaCurso, models.EstadoPendiente, false},
		{models.TipoPreviaCurso, models.EstadoCursando, false},
		{models.TipoPreviaCurso, models.EstadoCursado, true},
		{models.TipoPreviaCurso, models.EstadoAExamen, true},
		{models.TipoPreviaCurso, models.EstadoExonerado, true},
		{models.TipoPreviaExamen, models.EstadoPendiente, false},
		{models.TipoPreviaExamen, models.EstadoCursado, false},
		{models.TipoPreviaExamen, models.EstadoAExamen, false},
		{models.TipoPreviaExamen, models.EstadoExonerado, true},
		// Unknown kinds fail closed.
		{models.TipoPrevia("OTRA"), models.EstadoExonerado, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PreviaCumplida(tc.tipo, tc.estado),
			"tipo %s, estado %s", tc.tipo, tc.estado)
	}
}

func TestEvaluarMateriaCursoCumplidoPorCursado(t *testing.T) {
	m := materiaConPrevias(models.Previa{
		Tipo:      models.TipoPreviaCurso,
		MateriaID: 1,
		Materia:   &models.MateriaResumen{ID: 1, Codigo: "FIS1", Nombre: "Física 1"},
	})
	h := HistorialMap{1: models.EstadoCursado}

	resultado := EvaluarMateria(m, h)

	assert.True(t, resultado.Elegible)
	assert.Empty(t, resultado.Motivos)
	require.Len(t, resultado.Previas, 1)
	assert.True(t, resultado.Previas[0].Cumplida)
	assert.Equal(t, "FIS1", resultado.Previas[0].Materia)
}

func TestEvaluarMateriaExamenNoCumplidoPorCursado(t *testing.T) {
	m := materiaConPrevias(models.Previa{
		Tipo:      models.TipoPreviaExamen,
		MateriaID: 1,
		Materia:   &models.MateriaResumen{ID: 1, Codigo: "FIS1", Nombre: "Física 1"},
	})
	h := HistorialMap{1: models.EstadoCursado}

	resultado := EvaluarMateria(m, h)

	assert.False(t, resultado.Elegible)
	require.Len(t, resultado.Motivos, 1)
	assert.Contains(t, resultado.Motivos[0], "FIS1")
	assert.Contains(t, resultado.Motivos[0], "examen")
}

func TestEvaluarMateriaSinHistorial(t *testing.T) {
	m := materiaConPrevias(models.Previa{Tipo: models.TipoPreviaCurso, MateriaID: 1})

	resultado := EvaluarMateria(m, HistorialMap{})

	assert.False(t, resultado.Elegible)
	require.Len(t, resultado.Previas, 1)
	assert.Equal(t, models.EstadoPendiente, resultado.Previas[0].Estado)
	// Unresolved reference falls back to the raw identifier label.
	assert.Equal(t, "materia 1", resultado.Previas[0].Materia)
}

func TestEvaluarMateriaPreservaOrdenDePrevias(t *testing.T) {
	m := materiaConPrevias(
		models.Previa{Tipo: models.TipoPreviaCurso, MateriaID: 3},
		models.Previa{Tipo: models.TipoPreviaExamen, MateriaID: 1},
		models.Previa{Tipo: models.TipoPreviaCurso, MateriaID: 2},
	)

	resultado := EvaluarMateria(m, HistorialMap{})

	require.Len(t, resultado.Previas, 3)
	assert.Equal(t, int64(3), resultado.Previas[0].MateriaID)
	assert.Equal(t, int64(1), resultado.Previas[1].MateriaID)
	assert.Equal(t, int64(2), resultado.Previas[2].MateriaID)
	assert.Len(t, resultado.Motivos, 3)
}

func TestEvaluarMateriaYaExonerada(t *testing.T) {
	m := materiaConPrevias()
	h := HistorialMap{100: models.EstadoExonerado}

	resultado := EvaluarMateria(m, h)

	// The note is informational only: it never blocks eligibility and
	// motivos stays empty iff the materia is eligible.
	assert.True(t, resultado.Elegible)
	assert.Empty(t, resultado.Motivos)
	assert.Equal(t, "la materia ya fue exonerada", resultado.Nota)
}

func TestEvaluarMateriaTipoDesconocidoFallaCerrado(t *testing.T) {
	m := materiaConPrevias(models.Previa{Tipo: models.TipoPrevia("OTRA"), MateriaID: 1})
	h := HistorialMap{1: models.EstadoExonerado}

	resultado := EvaluarMateria(m, h)

	assert.False(t, resultado.Elegible)
	assert.Len(t, resultado.Motivos, 1)
}
