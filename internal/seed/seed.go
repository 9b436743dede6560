package seed

import (
	"log/slog"

	"github.com/haylex-sistemas/haylex/backend/internal/config"
	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/haylex-sistemas/haylex/backend/internal/repository"
	"github.com/haylex-sistemas/haylex/backend/internal/review"
	"golang.org/x/crypto/bcrypt"
)

// SeedSampleData inserta un juego de datos fijo para demos y pruebas
// manuales: tres ejecutivos con cartera, reportes en los tres estados y
// algunos mensajes cruzados.
func SeedSampleData(cfg *config.Config, r *repository.Repository) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("no se pudo generar el hash de la contraseña", "error", err)
		return
	}

	executives := []*domain.User{
		{Username: "ana.garcia", FullName: "Ana García", Email: "ana.garcia@" + cfg.Email.UserDomain, Role: domain.RoleExecutive},
		{Username: "bruno.lopez", FullName: "Bruno López", Email: "bruno.lopez@" + cfg.Email.UserDomain, Role: domain.RoleExecutive},
		{Username: "carla.perez", FullName: "Carla Pérez", Email: "carla.perez@" + cfg.Email.UserDomain, Role: domain.RoleExecutive},
	}

	for _, executive := range executives {
		executive.PasswordHash = string(passwordHash)
		if err := r.CreateUser(executive); err != nil {
			slog.Error("no se pudo insertar el ejecutivo", "username", executive.Username, "error", err)
			return
		}
	}

	clients := []*domain.Client{
		{Name: "ACME", ExecutiveID: executives[0].ID},
		{Name: "Globex", ExecutiveID: executives[1].ID},
		{Name: "Initech", ExecutiveID: executives[2].ID},
		{Name: "Soylent", ExecutiveID: executives[0].ID},
	}

	for _, client := range clients {
		if err := r.CreateClient(client); err != nil {
			slog.Error("no se pudo insertar el cliente", "name", client.Name, "error", err)
			return
		}
	}

	// Los reportes se crean a través del flujo de revisión para que pasen por
	// las mismas validaciones que en producción
	w := review.New(r)

	if _, err := w.SaveProgress(executives[0].ID, clients[0].ID, []string{"Llamar al cliente", "Preparar propuesta"}, ""); err != nil {
		slog.Error("no se pudo crear el borrador de ejemplo", "error", err)
		return
	}

	if _, err := w.Submit(executives[1].ID, clients[1].ID, []string{"Visita a planta", "Enviar cotización"}, "https://drive.example.com/evidencia-globex"); err != nil {
		slog.Error("no se pudo crear el reporte en revisión de ejemplo", "error", err)
		return
	}

	finalized, err := w.Submit(executives[2].ID, clients[2].ID, []string{"Renovación de contrato"}, "")
	if err != nil {
		slog.Error("no se pudo crear el reporte de ejemplo", "error", err)
		return
	}
	if _, err := w.Evaluate(finalized.ID, 85, "Buen seguimiento"); err != nil {
		slog.Error("no se pudo calificar el reporte de ejemplo", "error", err)
		return
	}

	messages := []*domain.Message{
		{SenderID: executives[0].ID, RecipientID: executives[1].ID, Body: "¿Me pasas la plantilla de cotización?"},
		{SenderID: executives[1].ID, RecipientID: executives[0].ID, Body: "Claro, te la envío por correo."},
		{SenderID: executives[2].ID, RecipientID: executives[0].ID, Body: "La gerencia ya calificó mi reporte de Initech."},
	}

	for _, message := range messages {
		if err := r.CreateMessage(message); err != nil {
			slog.Error("no se pudo insertar el mensaje", "error", err)
			return
		}
	}

	slog.Info("datos de ejemplo insertados",
		"executives", len(executives),
		"clients", len(clients),
		"messages", len(messages),
	)
}
