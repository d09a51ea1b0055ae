package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lawlink-api/internal/application/auth"
	"github.com/lawlink-api/internal/application/registration"
	"github.com/lawlink-api/internal/config"
	"github.com/lawlink-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/lawlink-api/internal/infrastructure/jwt"
	s3infra "github.com/lawlink-api/internal/infrastructure/s3"
	"github.com/lawlink-api/internal/infrastructure/smtp"
	"github.com/lawlink-api/internal/otp"
	transporthttp "github.com/lawlink-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// S3 store for profile pictures.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for verification and reset codes.
	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		AdminRepo:       dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Admins),
		LawyerRepo:      dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Lawyers),
		ClientRepo:      dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Clients),
		AppointmentRepo: dynamo.NewAppointmentRepo(dynamoClient, cfg.DynamoTables.Appointments),
		CaseRepo:        dynamo.NewCaseRepo(dynamoClient, cfg.DynamoTables.Cases),
		InteractionRepo: dynamo.NewInteractionRepo(dynamoClient, cfg.DynamoTables.Interactions),
		QuestionRepo:    dynamo.NewQuestionRepo(dynamoClient, cfg.DynamoTables.Questions, cfg.DynamoTables.Answers),
		CommentRepo:     dynamo.NewCommentRepo(dynamoClient, cfg.DynamoTables.Comments, cfg.DynamoTables.CommentReplies),
		MessageRepo:     dynamo.NewMessageRepo(dynamoClient, cfg.DynamoTables.Messages),
		ReportRepo:      dynamo.NewReportRepo(dynamoClient, cfg.DynamoTables.Reports),

		RegistrationLedger: otp.NewLedger[registration.Pending](),
		ResetLedger:        otp.NewLedger[auth.ResetTicket](),

		S3Store:     s3Store,
		Mailer:      mailer,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
