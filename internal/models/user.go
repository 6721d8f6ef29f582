package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The password field holds a bcrypt hash,
// never the plaintext, and is excluded from every JSON response.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Date     time.Time          `bson:"date" json:"date"`
}
