package evaluation

import (
	"fmt"
	"sort"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/timeutil"
)

// SlotMateria identifies one schedule slot inside a conflict record.
type SlotMateria struct {
	MateriaID int64  `json:"materiaId"`
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
	Inicio    string `json:"inicio"`
	Fin       string `json:"fin"`
}

// Choque is a detected time overlap between two slots on the same day.
type Choque struct {
	Dia           models.DiaSemana `json:"dia"`
	MateriaA      SlotMateria      `json:"materiaA"`
	MateriaB      SlotMateria      `json:"materiaB"`
	SolapeMinutos int              `json:"solapeMinutos"`
	Solape        string           `json:"solape"`
}

// ResultadoChoques aggregates the conflicts of a candidate selection
// plus the total declared load. Overlapping time is not subtracted
// from the total: each materia contributes its full declared minutes.
type ResultadoChoques struct {
	Choques      []Choque `json:"choques"`
	TotalMinutos int      `json:"totalMinutos"`
}

// slot is a parsed schedule slot tagged with its owning materia.
type slot struct {
	materia models.MateriaResumen
	inicio  int
	fin     int
}

func (s slot) ref() SlotMateria {
	return SlotMateria{
		MateriaID: s.materia.ID,
		Codigo:    s.materia.Codigo,
		Nombre:    s.materia.Nombre,
		Inicio:    timeutil.FormatHHMM(s.inicio),
		Fin:       timeutil.FormatHHMM(s.fin),
	}
}

// DetectarChoques buckets every candidate slot by day, finds all
// pairwise overlaps within each day and sums the declared minutes of
// all slots. Days are visited in fixed week order and slots within a
// day are sorted by start time (stable on ties), so the conflict list
// is deterministic.
func DetectarChoques(materias []*models.Materia) (*ResultadoChoques, error) {
	porDia := make(map[models.DiaSemana][]slot, len(models.DiasSemana))
	totalMinutos := 0

	for _, m := range materias {
		resumen := m.Resumen()
		for _, h := range m.Horarios {
			inicio, err := timeutil.ParseHHMM(h.HoraInicio)
			if err != nil {
				return nil, fmt.Errorf("materia %s, horario %s: %w", m.Codigo, h.Dia, err)
			}
			fin, err := timeutil.ParseHHMM(h.HoraFin)
			if err != nil {
				return nil, fmt.Errorf("materia %s, horario %s: %w", m.Codigo, h.Dia, err)
			}
			totalMinutos += fin - inicio
			porDia[h.Dia] = append(porDia[h.Dia], slot{materia: resumen, inicio: inicio, fin: fin})
		}
	}

	resultado := &ResultadoChoques{Choques: []Choque{}, TotalMinutos: totalMinutos}

	for _, dia := range models.DiasSemana {
		slots := porDia[dia]
		if len(slots) < 2 {
			continue
		}
		sort.SliceStable(slots, func(i, j int) bool {
			return slots[i].inicio < slots[j].inicio
		})

		for i := 0; i < len(slots)-1; i++ {
			a := slots[i]
			// Slots are sorted by start: once a later slot starts at or
			// after a's end, no slot after it can overlap a either.
			for j := i + 1; j < len(slots) && slots[j].inicio < a.fin; j++ {
				b := slots[j]
				if !timeutil.Overlaps(a.inicio, a.fin, b.inicio, b.fin) {
					continue
				}
				inicioSolape := max(a.inicio, b.inicio)
				finSolape := min(a.fin, b.fin)
				resultado.Choques = append(resultado.Choques, Choque{
					Dia:           dia,
					MateriaA:      a.ref(),
					MateriaB:      b.ref(),
					SolapeMinutos: finSolape - inicioSolape,
					Solape:        timeutil.FormatRange(inicioSolape, finSolape),
				})
			}
		}
	}

	return resultado, nil
}

// MinutosMateria sums the declared duration of one materia's slots.
func MinutosMateria(m *models.Materia) (int, error) {
	total := 0
	for _, h := range m.Horarios {
		inicio, err := timeutil.ParseHHMM(h.HoraInicio)
		if err != nil {
			return 0, fmt.Errorf("materia %s: %w", m.Codigo, err)
		}
		fin, err := timeutil.ParseHHMM(h.HoraFin)
		if err != nil {
			return 0, fmt.Errorf("materia %s: %w", m.Codigo, err)
		}
		total += fin - inicio
	}
	return total, nil
}
