package models

import "gorm.io/datatypes"

type Product struct {
	Base
	ProductName string                      `gorm:"not null" json:"productName"`
	ShoeType    string                      `gorm:"not null" json:"shoeType"`
	Image       datatypes.JSONSlice[string] `json:"image"`
	Price       string                      `gorm:"not null" json:"price"`
	Rating      float64                     `gorm:"not null" json:"rating"`
	Description string                      `gorm:"not null" json:"description"`
	Color       datatypes.JSONSlice[string] `json:"color"`
	Size        datatypes.JSONSlice[string] `json:"size"`
}
