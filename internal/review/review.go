// Package review implementa el ciclo de vida de los reportes de actividades:
// borrador -> en_revision -> finalizada. El ejecutivo dueño edita el contenido
// mientras el reporte no esté finalizado; la gerencia califica solo reportes
// en revisión. Un reporte finalizado es historial de solo lectura y se
// reemplaza creando un registro nuevo para el mismo par (ejecutivo, cliente).
package review

import (
	"errors"
	"strings"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
)

const (
	MinScore int32 = 0
	MaxScore int32 = 100
)

// Store es el almacén de reportes. *repository.Repository lo implementa;
// los tests usan una versión en memoria.
type Store interface {
	// GetActiveTaskRecord devuelve el único registro no finalizado del par
	// (ejecutivo, cliente), o domain.ErrNotFound.
	GetActiveTaskRecord(executiveID int64, clientID int64) (*domain.TaskRecord, error)
	GetTaskRecordByID(id int64) (*domain.TaskRecord, error)
	CreateTaskRecord(record *domain.TaskRecord) error
	// UpdateTaskRecord devuelve domain.ErrVersionConflict si el registro fue
	// modificado por otra operación desde que se leyó.
	UpdateTaskRecord(record *domain.TaskRecord) error
}

type Workflow struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Workflow {
	return &Workflow{
		store: store,
		now:   time.Now,
	}
}

// SaveProgress guarda el avance del ejecutivo sin enviarlo a revisión. Si el
// par (ejecutivo, cliente) no tiene registro activo se crea un borrador nuevo;
// si lo tiene, se sobrescribe el contenido sin tocar el estado ni la fecha de
// envío, incluso si el reporte ya está en revisión.
func (w *Workflow) SaveProgress(executiveID int64, clientID int64, entries []string, evidence string) (*domain.TaskRecord, error) {
	cleaned := CleanEntries(entries)
	if len(cleaned) == 0 {
		return nil, domain.ErrEmptySubmission
	}

	record, err := w.store.GetActiveTaskRecord(executiveID, clientID)
	switch {
	case err == nil:
		record.Entries = cleaned
		record.Evidence = evidence
		if err := w.store.UpdateTaskRecord(record); err != nil {
			return nil, err
		}
		return record, nil
	case errors.Is(err, domain.ErrNotFound):
		record = &domain.TaskRecord{
			ExecutiveID: executiveID,
			ClientID:    clientID,
			Entries:     cleaned,
			Evidence:    evidence,
			Status:      domain.StatusDraft,
		}
		if err := w.store.CreateTaskRecord(record); err != nil {
			return nil, err
		}
		return record, nil
	default:
		return nil, err
	}
}

// Submit envía el reporte a revisión. Al pasar de borrador a revisión se
// estampa la fecha de envío; reenviar un reporte ya en revisión solo
// actualiza el contenido y conserva la fecha original.
func (w *Workflow) Submit(executiveID int64, clientID int64, entries []string, evidence string) (*domain.TaskRecord, error) {
	cleaned := CleanEntries(entries)
	if len(cleaned) == 0 {
		return nil, domain.ErrEmptySubmission
	}

	record, err := w.store.GetActiveTaskRecord(executiveID, clientID)
	switch {
	case err == nil:
		record.Entries = cleaned
		record.Evidence = evidence
		if record.Status == domain.StatusDraft {
			record.Status = domain.StatusInReview
			submittedAt := w.now()
			record.SubmittedAt = &submittedAt
		}
		if err := w.store.UpdateTaskRecord(record); err != nil {
			return nil, err
		}
		return record, nil
	case errors.Is(err, domain.ErrNotFound):
		submittedAt := w.now()
		record = &domain.TaskRecord{
			ExecutiveID: executiveID,
			ClientID:    clientID,
			Entries:     cleaned,
			Evidence:    evidence,
			Status:      domain.StatusInReview,
			SubmittedAt: &submittedAt,
		}
		if err := w.store.CreateTaskRecord(record); err != nil {
			return nil, err
		}
		return record, nil
	default:
		return nil, err
	}
}

// Evaluate registra la calificación de la gerencia y cierra el reporte.
// Solo se puede calificar un reporte en revisión; calificar un borrador o un
// reporte ya finalizado devuelve domain.ErrInvalidTransition.
func (w *Workflow) Evaluate(recordID int64, score int32, notes string) (*domain.TaskRecord, error) {
	record, err := w.store.GetTaskRecordByID(recordID)
	if err != nil {
		return nil, err
	}

	if record.Status != domain.StatusInReview {
		return nil, domain.ErrInvalidTransition
	}

	record.Score = ClampScore(score)
	record.AdminNotes = notes
	record.Status = domain.StatusFinalized

	if err := w.store.UpdateTaskRecord(record); err != nil {
		return nil, err
	}

	return record, nil
}

// CleanEntries recorta espacios y descarta las actividades vacías,
// conservando el orden. No se eliminan duplicados.
func CleanEntries(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			cleaned = append(cleaned, entry)
		}
	}
	return cleaned
}

func ClampScore(score int32) int32 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
