package models

const (
	RolePlayer     = "player"
	RoleFieldOwner = "field_owner"
)

const (
	RoleIDPlayer     uint = 1
	RoleIDFieldOwner uint = 2
)

// Role is a static lookup row seeded at boot.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

// DefaultRoles are the rows seeded into the roles table.
var DefaultRoles = []Role{
	{ID: RoleIDPlayer, Name: RolePlayer, Description: "Usuário que pode jogar e organizar partidas"},
	{ID: RoleIDFieldOwner, Name: RoleFieldOwner, Description: "Usuário responsável por cadastrar e gerenciar centros esportivos e campos"},
}

// RoleIDByName resolves a role name to its seeded id.
func RoleIDByName(name string) (uint, bool) {
	for _, r := range DefaultRoles {
		if r.Name == name {
			return r.ID, true
		}
	}
	return 0, false
}
