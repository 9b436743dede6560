package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/haylex-sistemas/haylex/backend/internal/config"
	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/haylex-sistemas/haylex/backend/internal/review"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  Store
	review      *review.Workflow
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Store, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		review:      review.New(repo),
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Autenticación
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Las siguientes rutas requieren sesión iniciada
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateClient)
			r.Get("/", h.GetClients) // la gerencia ve todos, el ejecutivo solo su cartera
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.clientInfo)
				r.Get("/", h.GetClient)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateClient)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteClient)
				r.Route("/my-report", func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleExecutive}))
					r.Use(h.preventInactiveUser)
					r.Use(h.preventNotAssignedExecutive)
					r.Get("/", h.GetMyActiveTaskRecord)
					r.Post("/save", h.SaveMyTaskRecord)
					r.Post("/submit", h.SubmitMyTaskRecord)
				})
			})
		})

		r.Route("/task-records", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetTaskRecordsByStatus)
			r.Get("/mine", h.GetMyTaskRecords)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.taskRecord)
				r.Get("/", h.GetTaskRecord)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/evaluate", h.EvaluateTaskRecord)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.SendMessage)
			r.Get("/", h.GetMyMessages)
			r.Get("/unread-count", h.GetUnreadCount)
			r.Post("/{id}/read", h.MarkMessageRead)
		})
	})
}
