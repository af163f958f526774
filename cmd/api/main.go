package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"mercato/internal/adapter/api"
	"mercato/internal/adapter/api/handler"
	apimiddleware "mercato/internal/adapter/api/middleware"
	"mercato/internal/adapter/api/router"
	"mercato/internal/adapter/repository"
	"mercato/internal/domain/service"
	"mercato/internal/infrastructure/firebase"
	"mercato/internal/infrastructure/websocket"
	"mercato/internal/usecase"
	"mercato/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account JSON in the environment wins; fall back to a file path
	// for local development.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)
	walletRepo := repository.NewFirestoreWalletRepository(firestoreClient)
	walletEntryRepo := repository.NewFirestoreWalletEntryRepository(firestoreClient)
	payoutRepo := repository.NewFirestorePayoutRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	paymentService := service.NewPaystackPaymentService(cfg.PaystackSecretKey, cfg.PaystackBaseURL)

	splitCalc, err := usecase.NewSplitCalculator(cfg.AdminFeePercentage)
	if err != nil {
		log.Fatalf("Invalid admin fee percentage: %v", err)
	}

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	walletUseCase := usecase.NewWalletUseCase(walletRepo, walletEntryRepo, cfg.Currency)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, transactionRepo, walletUseCase, cfg.AutoReleaseHours)
	paymentUseCase := usecase.NewPaymentUseCase(transactionRepo, orderRepo, productRepo, userRepo, paymentService, walletUseCase, splitCalc, cfg.Currency)
	payoutUseCase := usecase.NewPayoutUseCase(payoutRepo, userRepo, walletUseCase)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, wsManager)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	handlers := router.Handlers{
		Health:    handler.NewHealthHandler(),
		Auth:      handler.NewAuthHandler(authUseCase),
		User:      handler.NewUserHandler(userUseCase),
		Product:   handler.NewProductHandler(productUseCase),
		Order:     handler.NewOrderHandler(orderUseCase),
		Payment:   handler.NewPaymentHandler(paymentUseCase, paymentService),
		Wallet:    handler.NewWalletHandler(walletUseCase),
		Payout:    handler.NewPayoutHandler(payoutUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager),
	}

	router.Setup(e, handlers, authMiddleware, roleMiddleware)

	// Background escrow auto-release sweep
	orderUseCase.StartAutoReleaseJob(ctx)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
