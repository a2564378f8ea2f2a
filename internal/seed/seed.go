package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/HenryFerreira/bedelias-backend/internal/app/models"
	appRepos "github.com/HenryFerreira/bedelias-backend/internal/app/repositories"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/apperrors"
	pkgAuth "github.com/HenryFerreira/bedelias-backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@bedelias.edu.uy"

// CreateDefaultData creates the default admin account and a starter
// catalog when the database is empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	materiaRepo := appRepos.NewMateriaRepository(dbPool)

	var finalErr error

	if err := createAdminUser(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := createStarterCatalog(ctx, materiaRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	_, err := userRepo.ObtenerPorEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	lgr.Info().Msg("Creating default admin user...")

	hashed, err := pkgAuth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		Nombre:   "Administrador",
		Apellido: "Bedelias",
		Rol:      appModels.RolAdministrador,
	}
	if err := userRepo.Crear(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	return nil
}

// createStarterCatalog seeds a small two-semester catalog so a fresh
// install has something to evaluate against.
func createStarterCatalog(ctx context.Context, materiaRepo *appRepos.MateriaRepository, lgr zerolog.Logger) error {
	existentes, err := materiaRepo.ListarMaterias(ctx, nil)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing catalog")
		return err
	}
	if len(existentes) > 0 {
		return nil
	}

	lgr.Info().Msg("Seeding starter catalog...")

	cdiv := &appModels.Materia{
		Codigo: "CDIV", Nombre: "Calculo Diferencial e Integral en una Variable", Creditos: 13, Semestre: 1,
		Horarios: []appModels.Horario{
			{Dia: appModels.DiaLunes, HoraInicio: "08:00", HoraFin: "10:00"},
			{Dia: appModels.DiaMiercoles, HoraInicio: "08:00", HoraFin: "10:00"},
		},
	}
	gal1 := &appModels.Materia{
		Codigo: "GAL1", Nombre: "Geometria y Algebra Lineal 1", Creditos: 13, Semestre: 1,
		Horarios: []appModels.Horario{
			{Dia: appModels.DiaMartes, HoraInicio: "10:00", HoraFin: "12:00"},
			{Dia: appModels.DiaJueves, HoraInicio: "10:00", HoraFin: "12:00"},
		},
	}

	for _, m := range []*appModels.Materia{cdiv, gal1} {
		if err := materiaRepo.Crear(ctx, m); err != nil {
			lgr.Error().Err(err).Str("codigo", m.Codigo).Msg("Error seeding materia")
			return err
		}
	}

	segundoSemestre := []*appModels.Materia{
		{
			Codigo: "CDIVV", Nombre: "Calculo Diferencial e Integral en Varias Variables", Creditos: 13, Semestre: 2,
			Previas: []appModels.Previa{
				{Tipo: appModels.TipoPreviaCurso, MateriaID: cdiv.ID},
				{Tipo: appModels.TipoPreviaCurso, MateriaID: gal1.ID},
			},
			Horarios: []appModels.Horario{
				{Dia: appModels.DiaLunes, HoraInicio: "18:00", HoraFin: "20:00"},
			},
		},
		{
			Codigo: "GAL2", Nombre: "Geometria y Algebra Lineal 2", Creditos: 13, Semestre: 2,
			Previas: []appModels.Previa{
				{Tipo: appModels.TipoPreviaExamen, MateriaID: gal1.ID},
			},
			Horarios: []appModels.Horario{
				{Dia: appModels.DiaLunes, HoraInicio: "19:00", HoraFin: "21:00"},
			},
		},
	}

	for _, m := range segundoSemestre {
		if err := materiaRepo.Crear(ctx, m); err != nil {
			lgr.Error().Err(err).Str("codigo", m.Codigo).Msg("Error seeding materia")
			return err
		}
	}

	return nil
}
