package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account that may own a blog and subscribe to others.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	CreatedAt   time.Time `json:"created_at"`
}

// UserCompact is the public view of a user embedded in other resources
type UserCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
