package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderProduct captures a product's name and price at order-creation time.
// The order's total is derived from these snapshots, never recomputed from
// the live product rows.
type OrderProduct struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     Money              `bson:"price" json:"price"`
}

// Order defines the persisted order document. The customer email is
// denormalized onto the order so the reminder sweep can read it without a
// join.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    primitive.ObjectID `bson:"customerId" json:"customerId"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Products      []OrderProduct     `bson:"products" json:"products"`
	OrderDate     time.Time          `bson:"orderDate" json:"orderDate"`
	TotalAmount   Money              `bson:"totalAmount" json:"totalAmount"`
}
