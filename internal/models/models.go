package models

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Cart maps a stringified item id to its quantity.
type Cart = map[string]int

type Product struct {
	ID       int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string    `gorm:"not null"                       json:"name"`
	Image    string    `gorm:"not null"                       json:"image"`
	Category string    `gorm:"not null"                       json:"category"`
	NewPrice float64   `gorm:"not null"                       json:"new_price"`
	OldPrice float64   `gorm:"not null"                       json:"old_price"`
	Date     time.Time `json:"date"`
	InStock  bool      `gorm:"default:true"                   json:"inStock"`
}

type User struct {
	ID       uint                     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string                   `json:"name"`
	Email    string                   `gorm:"unique"                   json:"email"`
	Password string                   `json:"-"`
	CartData datatypes.JSONType[Cart] `json:"cartData"`
}

// NewCart builds the signup cart: slots "0".."199", all zero.
func NewCart() Cart {
	cart := make(Cart, 200)
	for i := 0; i < 200; i++ {
		cart[strconv.Itoa(i)] = 0
	}
	return cart
}
