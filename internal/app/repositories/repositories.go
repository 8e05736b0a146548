package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	EquipmentRepository *EquipmentRepository
	StatusRepository    *StatusRepository
	TicketRepository    *TicketRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		StatusRepository:    NewStatusRepository(db),
		TicketRepository:    NewTicketRepository(db),
	}
}
