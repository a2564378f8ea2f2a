package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
)

// fakeCatalogo serves materias from an in-memory slice, keeping the
// (semestre, codigo) ordering the repository guarantees.
type fakeCatalogo struct {
	materias []*models.Materia
}

func (f *fakeCatalogo) ListarMaterias(_ context.Context, semestre *int) ([]*models.Materia, error) {
	var out []*models.Materia
	for _, m := range f.materias {
		if semestre != nil && m.Semestre != *semestre {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCatalogo) ObtenerPorIDs(_ context.Context, ids []int64) ([]*models.Materia, error) {
	pedidos := make(map[int64]bool, len(ids))
	for _, id := range ids {
		pedidos[id] = true
	}
	var out []*models.Materia
	for _, m := range f.materias {
		if pedidos[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeHistorial struct {
	estados map[int64]models.EstadoMateria
}

func (f *fakeHistorial) MapaEstados(_ context.Context, _ int64) (map[int64]models.EstadoMateria, error) {
	return f.estados, nil
}

func catalogoDePrueba() *fakeCatalogo {
	return &fakeCatalogo{materias: []*models.Materia{
		{
			ID: 1, Codigo: "CDIV", Nombre: "Calculo DIV", Creditos: 13, Semestre: 1,
			Horarios: []models.Horario{
				{Dia: models.DiaLunes, HoraInicio: "08:00", HoraFin: "10:00"},
			},
		},
		{
			ID: 2, Codigo: "GAL1", Nombre: "Geometria y Algebra Lineal 1", Creditos: 13, Semestre: 1,
			Horarios: []models.Horario{
				{Dia: models.DiaLunes, HoraInicio: "09:00", HoraFin: "11:00"},
			},
		},
		{
			ID: 3, Codigo: "CDIVV", Nombre: "Calculo DIVV", Creditos: 13, Semestre: 2,
			Previas: []models.Previa{
				{Tipo: models.TipoPreviaCurso, MateriaID: 1, Materia: &models.MateriaResumen{ID: 1, Codigo: "CDIV"}},
			},
			Horarios: []models.Horario{
				{Dia: models.DiaMartes, HoraInicio: "18:00", HoraFin: "20:00"},
			},
		},
		{
			ID: 4, Codigo: "PROG2", Nombre: "Programacion 2", Creditos: 12, Semestre: 2,
			Previas: []models.Previa{
				{Tipo: models.TipoPreviaExamen, MateriaID: 2, Materia: &models.MateriaResumen{ID: 2, Codigo: "GAL1"}},
			},
		},
	}}
}

func nuevoServicioDePrueba(estados map[int64]models.EstadoMateria) *ElegibilidadService {
	return NewElegibilidadService(
		catalogoDePrueba(),
		&fakeHistorial{estados: estados},
		zerolog.Nop(),
	)
}

func TestComputarElegibilidad_ResumenConsistente(t *testing.T) {
	svc := nuevoServicioDePrueba(map[int64]models.EstadoMateria{
		1: models.EstadoCursado,
	})

	resp, err := svc.ComputarElegibilidad(context.Background(), 7, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Resumen.TotalMaterias)
	assert.Equal(t, resp.Resumen.TotalMaterias, resp.Resumen.Elegibles+resp.Resumen.NoElegibles)
	assert.Len(t, resp.Items, 4)

	porCodigo := make(map[string]bool, len(resp.Items))
	for _, item := range resp.Items {
		porCodigo[item.Materia.Codigo] = item.Elegible
		assert.Equal(t, item.Elegible, len(item.Motivos) == 0)
	}

	assert.True(t, porCodigo["CDIV"])
	assert.True(t, porCodigo["GAL1"])
	assert.True(t, porCodigo["CDIVV"], "curso aprobado satisfies CURSO_APROBADO")
	assert.False(t, porCodigo["PROG2"], "curso aprobado does not satisfy EXAMEN_APROBADO")
}

func TestComputarElegibilidad_FiltroSemestre(t *testing.T) {
	svc := nuevoServicioDePrueba(nil)

	semestre := 2
	resp, err := svc.ComputarElegibilidad(context.Background(), 7, &semestre)
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "CDIVV", resp.Items[0].Materia.Codigo)
	assert.Equal(t, "PROG2", resp.Items[1].Materia.Codigo)
}

func TestComputarElegibilidad_EstudianteInvalido(t *testing.T) {
	svc := nuevoServicioDePrueba(nil)

	_, err := svc.ComputarElegibilidad(context.Background(), 0, nil)
	require.Error(t, err)

	_, err = svc.ComputarElegibilidad(context.Background(), -3, nil)
	require.Error(t, err)
}

func TestVerificarSeleccion_DeduplicaYDescartaDesconocidas(t *testing.T) {
	svc := nuevoServicioDePrueba(nil)

	// Duplicates collapse, non-positive ids are malformed, unknown ids
	// are silently absent. Only 1 and 2 survive.
	resp, err := svc.VerificarSeleccion(context.Background(), 7, []int64{2, 1, 2, -5, 0, 999, 1})
	require.NoError(t, err)

	require.Len(t, resp.Materias, 2)
	assert.Equal(t, 2, resp.Resumen.Seleccionadas)

	// The detail follows candidate order, not catalog order.
	assert.Equal(t, "GAL1", resp.Materias[0].Materia.Codigo)
	assert.Equal(t, "CDIV", resp.Materias[1].Materia.Codigo)
}

func TestVerificarSeleccion_ChoquesYCarga(t *testing.T) {
	svc := nuevoServicioDePrueba(nil)

	resp, err := svc.VerificarSeleccion(context.Background(), 7, []int64{1, 2})
	require.NoError(t, err)

	require.Len(t, resp.Conflictos, 1)
	assert.Equal(t, 1, resp.Resumen.Conflictos)

	choque := resp.Conflictos[0]
	assert.Equal(t, models.DiaLunes, choque.Dia)
	assert.Equal(t, 60, choque.SolapeMinutos)
	assert.Equal(t, "09:00–10:00", choque.Solape)

	// Declared load is summed without subtracting the overlap.
	assert.Equal(t, 4.0, resp.Resumen.CargaHoras)
	assert.Equal(t, 2.0, resp.Materias[0].CargaHorasMateria)
	assert.Equal(t, 120, resp.Materias[0].CargaMinutos)
}

func TestVerificarSeleccion_SeleccionVacia(t *testing.T) {
	svc := nuevoServicioDePrueba(nil)

	_, err := svc.VerificarSeleccion(context.Background(), 7, nil)
	require.Error(t, err)

	_, err = svc.VerificarSeleccion(context.Background(), 7, []int64{0, -1})
	require.Error(t, err)
}

func TestVerificarSeleccion_Deterministica(t *testing.T) {
	svc := nuevoServicioDePrueba(map[int64]models.EstadoMateria{
		1: models.EstadoExonerado,
		2: models.EstadoCursando,
	})

	primera, err := svc.VerificarSeleccion(context.Background(), 7, []int64{3, 1, 2, 4})
	require.NoError(t, err)

	segunda, err := svc.VerificarSeleccion(context.Background(), 7, []int64{3, 1, 2, 4})
	require.NoError(t, err)

	primeraJSON, err := json.Marshal(primera)
	require.NoError(t, err)
	segundaJSON, err := json.Marshal(segunda)
	require.NoError(t, err)

	assert.Equal(t, string(primeraJSON), string(segundaJSON))
}

func TestNormalizarIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, normalizarIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, normalizarIDs([]int64{0, -1, -99}))
	assert.Empty(t, normalizarIDs(nil))
}
