package model

import (
	"time"
)

type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Nickname     string    `bson:"nickname" json:"nickname"`
	Roles        []string  `bson:"roles" json:"roles"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}
