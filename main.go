package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"eventfriend_server/routes"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Pick the store backend. DynamoDB in deployments; the in-memory
	// store for local development.
	var store services.DocumentStore
	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("Using in-memory document store")
		store = services.NewMemoryStore()
	} else {
		log.Println("Initializing DynamoDB client...")
		store = &services.DynamoStore{Client: services.InitializeDynamoDBClient()}
		log.Println("DynamoDB client initialized.")
	}

	// Initialize Services
	identityProvider := &services.DirectoryIdentityProvider{Store: store}
	userProfileService := &services.UserProfileService{Store: store, Identity: identityProvider}
	eventService := &services.EventService{Store: store}
	matchService := &services.MatchService{Store: store}
	chatService := &services.ChatService{Store: store}
	dashboardService := &services.DashboardService{
		Events:  eventService,
		Matches: matchService,
		Store:   store,
	}
	photoService := services.NewPhotoService()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to EventFriend")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterEventRoutes(r, eventService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterDashboardRoutes(r, dashboardService)
	routes.RegisterPhotoRoutes(r, photoService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
