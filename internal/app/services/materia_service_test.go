package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
)

func materiaRequestValida() dto.MateriaRequest {
	return dto.MateriaRequest{
		Codigo:   "cdiv",
		Nombre:   "Calculo DIV",
		Creditos: 13,
		Semestre: 1,
		Previas: []dto.PreviaRequest{
			{Tipo: models.TipoPreviaCurso, MateriaID: 9},
		},
		Horarios: []dto.HorarioRequest{
			{Dia: models.DiaLunes, HoraInicio: "08:00", HoraFin: "10:00"},
			{Dia: models.DiaLunes, HoraInicio: "08:00", HoraFin: "10:00"},
			{Dia: models.DiaMiercoles, HoraInicio: "08:00", HoraFin: "10:00"},
		},
	}
}

func TestMateriaFromRequest_NormalizaYDeduplica(t *testing.T) {
	materia, err := materiaFromRequest(materiaRequestValida(), 0)
	require.NoError(t, err)

	assert.Equal(t, "CDIV", materia.Codigo)
	require.Len(t, materia.Previas, 1)

	// The duplicated lunes slot collapses into one.
	require.Len(t, materia.Horarios, 2)
	assert.Equal(t, models.DiaLunes, materia.Horarios[0].Dia)
	assert.Equal(t, models.DiaMiercoles, materia.Horarios[1].Dia)
}

func TestMateriaFromRequest_Invalidas(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.MateriaRequest)
	}{
		{"codigo vacio", func(r *dto.MateriaRequest) { r.Codigo = "   " }},
		{"nombre vacio", func(r *dto.MateriaRequest) { r.Nombre = "" }},
		{"creditos negativos", func(r *dto.MateriaRequest) { r.Creditos = -1 }},
		{"semestre cero", func(r *dto.MateriaRequest) { r.Semestre = 0 }},
		{"tipo de previa desconocido", func(r *dto.MateriaRequest) {
			r.Previas[0].Tipo = "APROBADO"
		}},
		{"previa sin id", func(r *dto.MateriaRequest) {
			r.Previas[0].MateriaID = 0
		}},
		{"dia desconocido", func(r *dto.MateriaRequest) {
			r.Horarios[0].Dia = "DOM"
		}},
		{"hora mal formada", func(r *dto.MateriaRequest) {
			r.Horarios[0].HoraInicio = "8:00"
		}},
		{"inicio despues del fin", func(r *dto.MateriaRequest) {
			r.Horarios[0].HoraInicio = "11:00"
			r.Horarios[0].HoraFin = "10:00"
		}},
		{"horario de duracion cero", func(r *dto.MateriaRequest) {
			r.Horarios[0].HoraInicio = "10:00"
			r.Horarios[0].HoraFin = "10:00"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := materiaRequestValida()
			tt.mutate(&req)

			_, err := materiaFromRequest(req, 0)
			assert.Error(t, err)
		})
	}
}

func TestMateriaFromRequest_AutoPrevia(t *testing.T) {
	req := materiaRequestValida()
	req.Previas[0].MateriaID = 42

	_, err := materiaFromRequest(req, 42)
	assert.Error(t, err)

	// On create there is no id yet, so no self-reference to detect.
	_, err = materiaFromRequest(req, 0)
	assert.NoError(t, err)
}
