package models

type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Email          string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Mobile         string  `gorm:"size:15;not null" json:"mobile"`
	Password       string  `gorm:"size:200;not null" json:"-"` // bcrypt hash
	ProfilePicture *string `gorm:"size:100" json:"profile_picture"`
}
