package models

import "time"

type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleAgent    Role = "agent"
)

type User struct {
	ID               int        `bson:"_id" json:"id"`
	Username         string     `bson:"username" json:"username"`
	Password         string     `bson:"password" json:"-"`
	Email            string     `bson:"email" json:"email"`
	FullName         string     `bson:"fullName" json:"fullName"`
	Phone            string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar           string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role             Role       `bson:"role" json:"role"`
	Bio              string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Language         string     `bson:"language" json:"language"`
	ResetToken       string     `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"resetTokenExpiry,omitempty" json:"-"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
}
