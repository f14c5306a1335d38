package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleCloser     = 3
	RoleSDR        = 4
)

// Scope é o recorte de visibilidade já decidido pela autenticação.
// O motor de métricas nunca filtra por permissão: ele recebe os registros já recortados.
type Scope struct {
	RoleID  int      `json:"role_id"`
	TeamIDs []string `json:"team_ids,omitempty"`
}

// Unrestricted indica que o chamador enxerga todos os registros
func (s Scope) Unrestricted() bool {
	return s.RoleID == RoleAdmin
}

type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	TeamIDs    []string
	jwt.RegisteredClaims
}

func (c *Claims) Scope() Scope {
	return Scope{
		RoleID:  c.UserRoleID,
		TeamIDs: c.TeamIDs,
	}
}
