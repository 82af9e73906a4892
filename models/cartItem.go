package models

// CartItem belongs to one user; (UserID, ProductID) is unique so adds can upsert.
type CartItem struct {
	Base
	UserID      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product;index" json:"productId"`
	ProductName string `gorm:"not null" json:"productName"`
	Price       string `gorm:"not null" json:"price"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`
}
