package models

type Admin struct {
	Base
	Adminname string `gorm:"type:varchar(255);uniqueIndex;not null" json:"adminname"`
	Adminpass string `gorm:"not null" json:"-"`
}
