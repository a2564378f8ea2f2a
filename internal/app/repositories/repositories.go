package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	MateriaRepository   *MateriaRepository
	HistorialRepository *HistorialRepository
	TokenRepository     *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		MateriaRepository:   NewMateriaRepository(db),
		HistorialRepository: NewHistorialRepository(db),
		TokenRepository:     NewTokenRepository(db),
	}
}
