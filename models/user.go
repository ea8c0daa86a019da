package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	FullName     string    `gorm:"default:Người dùng mới" json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(11)" json:"phoneNumber"`
	DateOfBirth  string    `gorm:"default:'01/01/2000'" json:"dateOfBirth"`
	Avatar       string    `json:"avatar"`
	Status       int       `gorm:"default:1" json:"status"`
	Wallets      []Wallet  `json:"wallets,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// Wallet ví tiền được tạo kèm khi đăng ký tài khoản
type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id"`
	Balance   float64   `gorm:"default:0" json:"balance"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Wallet) TableName() string {
	return "wallets"
}
