package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	// No omitempty on the bson tag: an absent phone is persisted as "".
	Phone     string    `bson:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
