package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleAgent
}

// User representa un usuario del sistema (admin, manager o agente de campo).
// Los agentes pueden estar asignados a un manager (ManagerID).
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, agent
	Region       string
	ManagerID    string    // solo para agentes; vacío si no tiene manager asignado
	SoftDeleted  bool      // borrado lógico; el usuario no puede iniciar sesión
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
