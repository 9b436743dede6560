package domain

import "time"

type TaskStatus string

const (
	StatusDraft     TaskStatus = "borrador"
	StatusInReview  TaskStatus = "en_revision"
	StatusFinalized TaskStatus = "finalizada"
)

// TaskRecord es el reporte de actividades de un ejecutivo para un cliente.
// Solo puede existir un registro activo (no finalizado) por par (ejecutivo, cliente).
type TaskRecord struct {
	ID          int64      `json:"id"`
	ExecutiveID int64      `json:"executiveID"`
	ClientID    int64      `json:"clientID"`
	Entries     []string   `json:"entries"`
	Evidence    string     `json:"evidence"`
	Status      TaskStatus `json:"status"`
	Score       int32      `json:"score"`
	AdminNotes  string     `json:"adminNotes"`
	SubmittedAt *time.Time `json:"submittedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Version     int32      `json:"-"`
}

// Active indica si el registro todavía puede ser editado por su ejecutivo.
func (t *TaskRecord) Active() bool {
	return t.Status != StatusFinalized
}
