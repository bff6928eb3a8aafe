package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"crm/internal/config"
	"crm/internal/crm"
	"crm/internal/database"
	"crm/internal/handlers"
	"crm/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("customer index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	svc := crm.NewService(database.NewStore(db))

	handlers.RegisterValidations()

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/health", handlers.Health(db))

	r.POST("/customers", handlers.CreateCustomer(svc))
	r.POST("/customers/bulk", handlers.BulkCreateCustomers(svc))
	r.POST("/products", handlers.CreateProduct(svc))
	r.POST("/products/restock", handlers.RestockProducts(svc, config.AppEnv.LowStockThreshold, config.AppEnv.RestockAmount))
	r.POST("/orders", handlers.CreateOrder(svc))
	r.GET("/orders", handlers.GetOrders(svc))

	r.Run(":" + config.AppEnv.Port)
}
