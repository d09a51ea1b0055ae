package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lawlink-api/internal/application/account"
	"github.com/lawlink-api/internal/application/appointment"
	"github.com/lawlink-api/internal/application/auth"
	"github.com/lawlink-api/internal/application/casefile"
	"github.com/lawlink-api/internal/application/comment"
	"github.com/lawlink-api/internal/application/message"
	"github.com/lawlink-api/internal/application/question"
	"github.com/lawlink-api/internal/application/registration"
	"github.com/lawlink-api/internal/application/report"
	"github.com/lawlink-api/internal/config"
	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/lawlink-api/internal/infrastructure/jwt"
	s3infra "github.com/lawlink-api/internal/infrastructure/s3"
	"github.com/lawlink-api/internal/infrastructure/smtp"
	"github.com/lawlink-api/internal/otp"
	"github.com/lawlink-api/internal/transport/http/handler"
	appmiddleware "github.com/lawlink-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AdminRepo       *dynamo.AccountRepo
	LawyerRepo      *dynamo.AccountRepo
	ClientRepo      *dynamo.AccountRepo
	AppointmentRepo *dynamo.AppointmentRepo
	CaseRepo        *dynamo.CaseRepo
	InteractionRepo *dynamo.InteractionRepo
	QuestionRepo    *dynamo.QuestionRepo
	CommentRepo     *dynamo.CommentRepo
	MessageRepo     *dynamo.MessageRepo
	ReportRepo      *dynamo.ReportRepo

	RegistrationLedger *otp.Ledger[registration.Pending]
	ResetLedger        *otp.Ledger[auth.ResetTicket]

	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	regSvc := registration.NewService(registration.ServiceDeps{
		AdminRepo:  deps.AdminRepo,
		LawyerRepo: deps.LawyerRepo,
		ClientRepo: deps.ClientRepo,
		Ledger:     deps.RegistrationLedger,
		Files:      deps.S3Store,
		Mailer:     deps.Mailer,
		OTPTTL:     cfg.OTPTTL,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		AdminRepo:  deps.AdminRepo,
		LawyerRepo: deps.LawyerRepo,
		ClientRepo: deps.ClientRepo,
		Ledger:     deps.ResetLedger,
		Mailer:     deps.Mailer,
		JWT:        deps.JWTProvider,
		OTPTTL:     cfg.OTPTTL,
	})
	accountSvc := account.NewService(account.ServiceDeps{
		AdminRepo:  deps.AdminRepo,
		LawyerRepo: deps.LawyerRepo,
		ClientRepo: deps.ClientRepo,
		Files:      deps.S3Store,
	})
	appointmentSvc := appointment.NewService(appointment.ServiceDeps{
		AppointmentRepo: deps.AppointmentRepo,
		LawyerRepo:      deps.LawyerRepo,
		ClientRepo:      deps.ClientRepo,
	})
	caseSvc := casefile.NewService(casefile.ServiceDeps{
		CaseRepo:        deps.CaseRepo,
		InteractionRepo: deps.InteractionRepo,
		LawyerRepo:      deps.LawyerRepo,
		ClientRepo:      deps.ClientRepo,
	})
	questionSvc := question.NewService(question.ServiceDeps{
		QuestionRepo: deps.QuestionRepo,
		LawyerRepo:   deps.LawyerRepo,
		ClientRepo:   deps.ClientRepo,
	})
	commentSvc := comment.NewService(comment.ServiceDeps{
		CommentRepo: deps.CommentRepo,
		LawyerRepo:  deps.LawyerRepo,
		ClientRepo:  deps.ClientRepo,
	})
	messageSvc := message.NewService(deps.MessageRepo)
	reportSvc := report.NewService(deps.ReportRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(regSvc, authSvc)
	lawyerH := handler.NewAccountHandler(accountSvc, domain.RoleLawyer)
	clientH := handler.NewAccountHandler(accountSvc, domain.RoleClient)
	adminAccountH := handler.NewAccountHandler(accountSvc, domain.RoleAdmin)
	adminH := handler.NewAdminHandler(regSvc)
	appointmentH := handler.NewAppointmentHandler(appointmentSvc)
	caseH := handler.NewCaseHandler(caseSvc)
	questionH := handler.NewQuestionHandler(questionSvc)
	commentH := handler.NewCommentHandler(commentSvc)
	messageH := handler.NewMessageHandler(messageSvc)
	reportH := handler.NewReportHandler(reportSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/auth/register/{role}/initiate", authH.RegisterInitiate)
		r.Post("/auth/register/{role}/finalize", authH.RegisterFinalize)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/reset/request", authH.ResetRequest)
		r.Post("/auth/reset/confirm", authH.ResetConfirm)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/lawyers", lawyerH.List)
			r.Get("/lawyers/{id}", lawyerH.Get)
			r.Put("/lawyers/{id}", lawyerH.Update)
			r.Get("/lawyers/{id}/picture", lawyerH.GetPicture)
			r.Put("/lawyers/{id}/picture", lawyerH.UpdatePicture)

			r.Get("/clients", clientH.List)
			r.Get("/clients/{id}", clientH.Get)
			r.Put("/clients/{id}", clientH.Update)
			r.Get("/clients/{id}/picture", clientH.GetPicture)
			r.Put("/clients/{id}/picture", clientH.UpdatePicture)

			r.Post("/appointments", appointmentH.Create)
			r.Put("/appointments/{id}/status", appointmentH.UpdateStatus)
			r.Get("/appointments/user/{user_id}", appointmentH.ListByUser)
			r.Delete("/appointments/{id}", appointmentH.Delete)

			r.Post("/cases", caseH.Create)
			r.Get("/cases", caseH.ListAll)
			r.Get("/cases/{id}", caseH.Get)
			r.Put("/cases/{id}", caseH.Update)
			r.Delete("/cases/{id}", caseH.Delete)
			r.Get("/cases/user/{user_id}/{role}", caseH.ListByUser)

			r.Post("/questions", questionH.Create)
			r.Get("/questions", questionH.ListAll)
			r.Get("/questions/client/{client_id}", questionH.ListByClient)
			r.Delete("/questions/{id}", questionH.Delete)
			r.Post("/questions/{id}/answers", questionH.CreateAnswer)
			r.Get("/questions/{id}/answers", questionH.ListAnswers)

			r.Post("/comments", commentH.Create)
			r.Get("/comments/client/{client_id}", commentH.ListByClient)
			r.Get("/comments/lawyer/{lawyer_id}", commentH.ListByLawyer)
			r.Delete("/comments/{id}", commentH.Delete)
			r.Post("/comments/{id}/replies", commentH.CreateReply)
			r.Get("/comments/{id}/replies", commentH.ListReplies)

			r.Post("/messages", messageH.Send)
			r.Get("/messages/{conversation_id}", messageH.Conversation)

			r.Post("/reports", reportH.Create)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/admins", adminH.Create)
				r.Get("/admins", adminAccountH.List)

				r.Get("/reports", reportH.ListAll)
				r.Put("/reports/{id}", reportH.Update)
				r.Delete("/reports/{id}", reportH.Delete)
			})
		})
	})

	return r
}
