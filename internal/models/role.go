package models

type Role struct {
	ID   uint   `gorm:"primarykey" json:"role_id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"role_name"`
}

// RoleAdmin is the seeded role attached to the bootstrap user.
const RoleAdmin = "Admin"

// SeededRoles is the fixed role set created with the schema. Admins may
// reassign roles but the application never alters this set.
var SeededRoles = []string{
	"Member",
	"Software Lead",
	"Mechanical Lead",
	"Outreach Lead",
	RoleAdmin,
}
