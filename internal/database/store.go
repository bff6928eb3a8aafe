package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crm/internal/models"
	"crm/internal/store"
)

// Store implements store.Store on top of a Mongo database. Transactional
// callers get atomicity through session contexts: InTransaction hands the
// callback a mongo.SessionContext, and every method below passes its context
// straight into the driver, so calls made inside the callback join the
// session automatically.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Collection("customers").FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Store) InsertCustomer(ctx context.Context, customer *models.Customer) error {
	res, err := s.db.Collection("customers").InsertOne(ctx, customer)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		customer.ID = id
	}
	return nil
}

func (s *Store) FindProducts(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	cursor, err := s.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ProductsBelowQuantity(ctx context.Context, threshold int) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.db.Collection("products").Find(ctx, bson.M{"quantity": bson.M{"$lt": threshold}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	res, err := s.db.Collection("products").InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (s *Store) IncrementProductQuantity(ctx context.Context, id primitive.ObjectID, amount, guard int) (bool, error) {
	filter := bson.M{
		"_id":      id,
		"quantity": bson.M{"$lt": guard},
	}
	update := bson.M{"$inc": bson.M{"quantity": amount}}

	res, err := s.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	res, err := s.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *Store) OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["orderDate"] = bson.M{"$gte": since}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})

	cursor, err := s.db.Collection("orders").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
