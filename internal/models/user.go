package models

import "time"

type User struct {
	ID string `gorm:"primaryKey;size:36" bson:"_id" json:"id"`

	FullName     string `gorm:"size:100;not null" bson:"fullName" json:"fullName"`
	Email        string `gorm:"size:100;uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" bson:"passwordHash" json:"-"`
	Role         string `gorm:"size:20;not null;index" bson:"role" json:"role"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
