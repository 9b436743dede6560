package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		ExecutiveID int64  `json:"executiveID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// El ejecutivo asignado debe existir y tener el rol correcto
	executive, err := h.repository.GetUserByID(req.ExecutiveID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El ejecutivo asignado no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if executive.Role != domain.RoleExecutive {
		h.errorResponse(w, r, "El usuario asignado no es un ejecutivo")
		return
	}

	client := &domain.Client{
		Name:        req.Name,
		ExecutiveID: req.ExecutiveID,
	}

	if err := h.repository.CreateClient(client); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "clients_name_key":
				h.errorResponse(w, r, "El nombre del cliente ya existe")
			case "clients_executive_id_fkey":
				h.errorResponse(w, r, "El ejecutivo asignado no existe")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Cliente creado", client)
}

// GetClients devuelve todos los clientes a la gerencia y solo la cartera
// propia a un ejecutivo.
func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var clients []*domain.Client
	var err error

	if myInfo.Role == domain.RoleAdmin {
		clients, err = h.repository.GetAllClients()
	} else {
		clients, err = h.repository.GetClientsByExecutiveID(myInfo.ID)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Lista de clientes obtenida", clients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	client := r.Context().Value(ClientCtx).(*domain.Client)

	if myInfo.Role != domain.RoleAdmin && client.ExecutiveID != myInfo.ID {
		h.errorResponse(w, r, "El cliente no está asignado a tu cuenta")
		return
	}

	h.successResponse(w, r, "Cliente obtenido", client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	var req struct {
		Name        *string `json:"name"`
		ExecutiveID *int64  `json:"executiveID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ExecutiveID != nil {
		executive, err := h.repository.GetUserByID(*req.ExecutiveID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "El ejecutivo asignado no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		if executive.Role != domain.RoleExecutive {
			h.errorResponse(w, r, "El usuario asignado no es un ejecutivo")
			return
		}
		client.ExecutiveID = *req.ExecutiveID
	}

	if err := h.repository.UpdateClient(client); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El cliente fue modificado por otra operación, inténtalo de nuevo")
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "clients_name_key":
				h.errorResponse(w, r, "El nombre del cliente ya existe")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Cliente actualizado", client)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	if err := h.repository.DeleteClient(client.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "task_records_client_id_fkey":
				h.errorResponse(w, r, "El cliente todavía tiene reportes registrados")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Cliente eliminado", nil)
}
