package model

import "time"

const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User 用户，username/email 入库前统一转小写
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex:uk_users_username;size:150;not null"`
	Email     string `gorm:"uniqueIndex:uk_users_email;size:254;not null"`
	Password  string `gorm:"size:255;not null" json:"-"`
	FirstName string `gorm:"size:150;not null;default:''"`
	LastName  string `gorm:"size:150;not null;default:''"`
	Role      int    `gorm:"not null;default:0"` // 0=user 1=admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role >= RoleAdmin
}
