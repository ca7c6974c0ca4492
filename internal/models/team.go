package models

// Team is the single team this database belongs to. Exactly one row exists
// once the database has been bootstrapped.
type Team struct {
	Number       int    `gorm:"column:team_number;primarykey" json:"team_number"`
	Name         string `gorm:"column:team_name;type:varchar(255);not null" json:"team_name"`
	PasswordHash string `gorm:"column:team_password_hash;type:varchar(255);not null" json:"-"`
}
