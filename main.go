package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"grantsproject/database"
	"grantsproject/handlers"
	repository "grantsproject/repositories"
	routes "grantsproject/routes"
	services "grantsproject/services"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Get MongoDB credentials from environment variables
	username := os.Getenv("MONGO_USERNAME")
	password := os.Getenv("MONGO_PASSWORD")
	cluster := os.Getenv("MONGO_CLUSTER")
	appName := os.Getenv("MONGO_APP_NAME")
	jwtSecret := os.Getenv("JWT_SECRET")

	if username == "" || password == "" || cluster == "" || appName == "" {
		log.Fatal("Missing required environment variables")
	}

	// Build MongoDB Atlas connection string
	uri := fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		username, password, cluster, appName)

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	fmt.Println("Successfully connected to MongoDB Atlas!")

	// Cascading deletes run inside a transaction only on a replica set.
	transactional := checkIfReplicaSet(client)

	db := client.Database("grants_project")

	fmt.Println("Creating database indexes...")
	if err := database.CreateGrantIndexes(db); err != nil {
		log.Printf("Warning: Failed to create grant indexes: %v", err)
	}

	// Repositories
	grantRepo := repository.NewGrantRepository(db)
	pledgeRepo := repository.NewPledgeRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	trackingRepo := repository.NewTrackingRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	grantService := services.NewGrantService(grantRepo, pledgeRepo, giftRepo, addressRepo, trackingRepo, calendarRepo, transactional)
	detailService := services.NewGrantDetailService(grantRepo, pledgeRepo, giftRepo, addressRepo, trackingRepo, calendarRepo)
	dashboardService := services.NewDashboardService(grantRepo, pledgeRepo, trackingRepo)
	calendarService := services.NewCalendarService(grantRepo, calendarRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Rehydrate the notification list before serving.
	if err := notificationService.Load(ctx); err != nil {
		log.Printf("Warning: Failed to load notifications: %v", err)
	}

	// Handlers
	grantHandler := handlers.NewGrantHandler(grantService)
	detailHandler := handlers.NewGrantDetailHandler(detailService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	fixtureHandler := handlers.NewFixtureHandler(os.Getenv("FIXTURES_DIR"))

	mux := routes.SetupRoutes(grantHandler, detailHandler, dashboardHandler, calendarHandler, notificationHandler, fixtureHandler, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("Server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func checkIfReplicaSet(client *mongo.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result bson.M
	err := client.Database("admin").RunCommand(ctx, bson.M{"hello": 1}).Decode(&result)

	if err != nil {
		fmt.Printf("Error checking replica set: %v\n", err)
		return false
	}

	if setName, exists := result["setName"]; exists {
		fmt.Printf("Part of replica set: %v\n", setName)
		return true
	}

	fmt.Println("Not part of a replica set")
	return false
}
