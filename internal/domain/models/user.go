// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a staff account that signs in to the admin.
//
// Roles is a set drawn from roles.Mentor and roles.Consultant; a user may
// hold both.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"`
	LoginID      string             `bson:"login_id" json:"login_id"`
	LoginIDCI    string             `bson:"login_id_ci" json:"login_id_ci"`
	Email        string             `bson:"email" json:"email"`
	Roles        []string           `bson:"roles" json:"roles"`
	AuthMethod   string             `bson:"auth_method" json:"auth_method"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
