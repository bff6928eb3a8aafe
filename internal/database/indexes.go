package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("customers").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureCustomerIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureCustomerIndexes: email_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	// The reminder sweep queries orders by date range.
	orderDateIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderDate", Value: -1}},
		Options: options.Index().SetName("orderDate_index"),
	}

	log.Println("EnsureOrderIndexes: creating orderDate_index index")
	_, err := indexes.CreateOne(ctx, orderDateIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: orderDate index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: orderDate_index index created")
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	// The low-stock scan filters on quantity.
	quantityIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "quantity", Value: 1}},
		Options: options.Index().SetName("quantity_index"),
	}

	log.Println("EnsureProductIndexes: creating quantity_index index")
	_, err := indexes.CreateOne(ctx, quantityIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: quantity index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: quantity_index index created")
	return nil
}
