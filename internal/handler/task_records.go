package handler

import (
	"errors"
	"net/http"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
)

func (h *Handler) GetMyActiveTaskRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	client := r.Context().Value(ClientCtx).(*domain.Client)

	record, err := h.repository.GetActiveTaskRecord(myInfo.ID, client.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.successResponse(w, r, "Todavía no tienes un reporte activo para este cliente", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Reporte activo obtenido", record)
}

func (h *Handler) SaveMyTaskRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	client := r.Context().Value(ClientCtx).(*domain.Client)

	var req struct {
		Entries  []string `json:"entries" validate:"required"`
		Evidence string   `json:"evidence" validate:"omitempty,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	record, err := h.review.SaveProgress(myInfo.ID, client.ID, req.Entries, req.Evidence)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySubmission):
			h.errorResponse(w, r, "El reporte debe incluir al menos una actividad")
		case errors.Is(err, domain.ErrVersionConflict):
			h.errorResponse(w, r, "El reporte fue modificado por otra operación, inténtalo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Avance guardado", record)
}

func (h *Handler) SubmitMyTaskRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	client := r.Context().Value(ClientCtx).(*domain.Client)

	var req struct {
		Entries  []string `json:"entries" validate:"required"`
		Evidence string   `json:"evidence" validate:"omitempty,max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	record, err := h.review.Submit(myInfo.ID, client.ID, req.Entries, req.Evidence)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySubmission):
			h.errorResponse(w, r, "El reporte debe incluir al menos una actividad")
		case errors.Is(err, domain.ErrVersionConflict):
			h.errorResponse(w, r, "El reporte fue modificado por otra operación, inténtalo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Reporte enviado a revisión", record)
}

func (h *Handler) GetMyTaskRecords(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	records, err := h.repository.GetTaskRecordsByExecutiveID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Reportes obtenidos", records)
}

func (h *Handler) GetTaskRecordsByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.StatusInReview)
	}

	if err := h.validate.Var(status, "oneof=borrador en_revision finalizada"); err != nil {
		h.errorResponse(w, r, "Estado de reporte inválido")
		return
	}

	records, err := h.repository.GetTaskRecordsByStatus(domain.TaskStatus(status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Reportes obtenidos", records)
}

func (h *Handler) GetTaskRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	record := r.Context().Value(TaskRecordCtx).(*domain.TaskRecord)

	if myInfo.Role != domain.RoleAdmin && record.ExecutiveID != myInfo.ID {
		h.errorResponse(w, r, "El reporte no pertenece a tu cuenta")
		return
	}

	h.successResponse(w, r, "Reporte obtenido", record)
}

func (h *Handler) EvaluateTaskRecord(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(TaskRecordCtx).(*domain.TaskRecord)

	var req struct {
		Score int32  `json:"score" validate:"min=0,max=100"`
		Notes string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	evaluated, err := h.review.Evaluate(record.ID, req.Score, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			h.errorResponse(w, r, "Solo se pueden calificar reportes en revisión")
		case errors.Is(err, domain.ErrVersionConflict):
			h.errorResponse(w, r, "El reporte fue modificado por otra operación, inténtalo de nuevo")
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, "El reporte no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// Se notifica al ejecutivo que su reporte fue calificado
	executive, err := h.repository.GetUserByID(evaluated.ExecutiveID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	client, err := h.repository.GetClientByID(evaluated.ClientID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "evaluation",
		To:   executive.Email,
		Data: domain.EvaluationMailData{
			FullName:   executive.FullName,
			ClientName: client.Name,
			Score:      evaluated.Score,
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Reporte calificado", evaluated)
}
