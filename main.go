package main

import (
	"log"
	"net/http"
	"os"

	"syntra_server/controllers"
	"syntra_server/routes"
	"syntra_server/services"
	"syntra_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	s3Service, err := services.NewS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 client: %v", err)
	}

	// Stores
	groupStore := &services.DynamoGroupStore{Dynamo: dynamoService}
	inviteStore := &services.DynamoInviteStore{Dynamo: dynamoService}
	notificationStore := &services.DynamoNotificationStore{Dynamo: dynamoService}
	fileStore := &services.DynamoFileRecordStore{Dynamo: dynamoService}

	dataDir := os.Getenv("SYNTRA_DATA_DIR")
	if dataDir == "" {
		dataDir = "~/.syntra"
	}
	localIndex := &services.LocalIndex{BaseDir: dataDir}

	// Realtime push
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()

	// Services
	membershipService := &services.MembershipService{
		Groups:              groupStore,
		Invites:             inviteStore,
		ExposeMissingGroups: os.Getenv("SYNTRA_EXPOSE_MISSING_GROUPS") == "true",
	}
	notificationService := &services.NotificationService{
		Groups:        groupStore,
		Notifications: notificationStore,
		Pusher:        &socket.NotificationHub{Server: socketServer},
	}
	fileService := &services.FileService{
		Files:    fileStore,
		Storage:  s3Service,
		Notifier: notificationService,
		Index:    localIndex,
	}

	authProvider := services.NewAuthProviderFromEnv()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterGroupRoutes(r, membershipService, authProvider)
	routes.RegisterInviteRoutes(r, membershipService, authProvider)
	routes.RegisterFileRoutes(r, fileService, notificationService, authProvider)
	routes.RegisterNotificationRoutes(r, notificationService, authProvider)
	routes.RegisterActionRoutes(r, controllers.NewActionController(membershipService, fileService, notificationService, authProvider))
	routes.RegisterS3Routes(r, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-Email"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
