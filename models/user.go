package models

type User struct {
	Base
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Img      string `json:"img"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}
