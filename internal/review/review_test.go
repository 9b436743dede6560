package review

import (
	"testing"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore es un Store en memoria para probar el flujo sin PostgreSQL.
type memStore struct {
	records map[int64]*domain.TaskRecord
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int64]*domain.TaskRecord)}
}

func copyRecord(record *domain.TaskRecord) *domain.TaskRecord {
	clone := *record
	clone.Entries = append([]string(nil), record.Entries...)
	if record.SubmittedAt != nil {
		submittedAt := *record.SubmittedAt
		clone.SubmittedAt = &submittedAt
	}
	return &clone
}

func (s *memStore) GetActiveTaskRecord(executiveID int64, clientID int64) (*domain.TaskRecord, error) {
	for _, record := range s.records {
		if record.ExecutiveID == executiveID && record.ClientID == clientID && record.Active() {
			return copyRecord(record), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) GetTaskRecordByID(id int64) (*domain.TaskRecord, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRecord(record), nil
}

func (s *memStore) CreateTaskRecord(record *domain.TaskRecord) error {
	s.nextID++
	record.ID = s.nextID
	record.Version = 1
	s.records[record.ID] = copyRecord(record)
	return nil
}

func (s *memStore) UpdateTaskRecord(record *domain.TaskRecord) error {
	stored, ok := s.records[record.ID]
	if !ok || stored.Version != record.Version {
		return domain.ErrVersionConflict
	}
	record.Version++
	s.records[record.ID] = copyRecord(record)
	return nil
}

func (s *memStore) activeCount(executiveID int64, clientID int64) int {
	count := 0
	for _, record := range s.records {
		if record.ExecutiveID == executiveID && record.ClientID == clientID && record.Active() {
			count++
		}
	}
	return count
}

func newTestWorkflow(store Store, at time.Time) *Workflow {
	w := New(store)
	w.now = func() time.Time { return at }
	return w
}

func TestSaveProgressCreatesDraft(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	record, err := w.SaveProgress(1, 10, []string{"Llamar al cliente"}, "")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, record.Status)
	assert.Equal(t, []string{"Llamar al cliente"}, record.Entries)
	assert.Nil(t, record.SubmittedAt)
	assert.Equal(t, int32(0), record.Score)
}

func TestSaveProgressRejectsEmptyEntries(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	_, err := w.SaveProgress(1, 10, []string{"", "   ", "\t"}, "")
	require.ErrorIs(t, err, domain.ErrEmptySubmission)

	// El almacén no debe haber cambiado
	assert.Empty(t, store.records)
}

func TestSubmitRejectsEmptyEntries(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	_, err := w.Submit(1, 10, nil, "")
	require.ErrorIs(t, err, domain.ErrEmptySubmission)
	assert.Empty(t, store.records)
}

func TestDraftThenSubmitRoundTrip(t *testing.T) {
	store := newMemStore()
	submitTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	w := newTestWorkflow(store, submitTime)

	draft, err := w.SaveProgress(1, 10, []string{"A", "B"}, "https://docs.example.com/evidencia")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDraft, draft.Status)

	submitted, err := w.Submit(1, 10, []string{"A", "B"}, "https://docs.example.com/evidencia")
	require.NoError(t, err)

	assert.Equal(t, draft.ID, submitted.ID)
	assert.Equal(t, domain.StatusInReview, submitted.Status)
	assert.Equal(t, []string{"A", "B"}, submitted.Entries)
	require.NotNil(t, submitted.SubmittedAt)
	assert.Equal(t, submitTime, *submitted.SubmittedAt)
	assert.Equal(t, int32(0), submitted.Score)
}

func TestAtMostOneActiveRecordPerPair(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	// Cualquier secuencia de guardados y envíos debe reutilizar el registro activo
	_, err := w.SaveProgress(1, 10, []string{"uno"}, "")
	require.NoError(t, err)
	_, err = w.SaveProgress(1, 10, []string{"uno", "dos"}, "")
	require.NoError(t, err)
	_, err = w.Submit(1, 10, []string{"uno", "dos", "tres"}, "")
	require.NoError(t, err)
	_, err = w.SaveProgress(1, 10, []string{"uno", "dos", "tres", "cuatro"}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, store.activeCount(1, 10))

	// Pares distintos son independientes
	_, err = w.Submit(2, 10, []string{"otro"}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, store.activeCount(2, 10))
	assert.Equal(t, 1, store.activeCount(1, 10))
}

func TestEvaluateDraftIsRejected(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	// ANA guarda un borrador para ACME con una sola actividad
	record, err := w.SaveProgress(1, 10, []string{"Llamar al cliente"}, "")
	require.NoError(t, err)

	_, err = w.Evaluate(record.ID, 90, "bien")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := store.GetTaskRecordByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, stored.Status)
	assert.Equal(t, int32(0), stored.Score)
}

func TestEvaluateInReviewFinalizes(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	record, err := w.Submit(1, 10, []string{"X", "Y", "Z"}, "")
	require.NoError(t, err)

	finalized, err := w.Evaluate(record.ID, 80, "Good")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFinalized, finalized.Status)
	assert.Equal(t, int32(80), finalized.Score)
	assert.Equal(t, "Good", finalized.AdminNotes)

	// Un guardado posterior del mismo par crea un borrador nuevo en lugar de
	// mutar el registro finalizado
	draft, err := w.SaveProgress(1, 10, []string{"nueva actividad"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, finalized.ID, draft.ID)
	assert.Equal(t, domain.StatusDraft, draft.Status)

	stored, err := store.GetTaskRecordByID(finalized.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinalized, stored.Status)
	assert.Equal(t, []string{"X", "Y", "Z"}, stored.Entries)
}

func TestEvaluateFinalizedIsRejected(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	record, err := w.Submit(1, 10, []string{"X"}, "")
	require.NoError(t, err)

	_, err = w.Evaluate(record.ID, 70, "")
	require.NoError(t, err)

	_, err = w.Evaluate(record.ID, 95, "segunda vuelta")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEvaluateMissingRecord(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	_, err := w.Evaluate(999, 50, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluateClampsScore(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	record, err := w.Submit(1, 10, []string{"X"}, "")
	require.NoError(t, err)
	finalized, err := w.Evaluate(record.ID, 250, "")
	require.NoError(t, err)
	assert.Equal(t, MaxScore, finalized.Score)

	record, err = w.Submit(1, 11, []string{"Y"}, "")
	require.NoError(t, err)
	finalized, err = w.Evaluate(record.ID, -20, "")
	require.NoError(t, err)
	assert.Equal(t, MinScore, finalized.Score)
}

func TestEditInReviewKeepsStatusAndSubmittedAt(t *testing.T) {
	store := newMemStore()
	submitTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	w := newTestWorkflow(store, submitTime)

	record, err := w.Submit(1, 10, []string{"X"}, "")
	require.NoError(t, err)

	// La edición posterior no regresa el reporte a borrador ni cambia la fecha
	w.now = func() time.Time { return submitTime.Add(48 * time.Hour) }
	edited, err := w.SaveProgress(1, 10, []string{"X", "Y"}, "")
	require.NoError(t, err)
	assert.Equal(t, record.ID, edited.ID)
	assert.Equal(t, domain.StatusInReview, edited.Status)
	require.NotNil(t, edited.SubmittedAt)
	assert.Equal(t, submitTime, *edited.SubmittedAt)

	// Reenviar tampoco cambia la fecha original
	resubmitted, err := w.Submit(1, 10, []string{"X", "Y", "Z"}, "")
	require.NoError(t, err)
	assert.Equal(t, submitTime, *resubmitted.SubmittedAt)
}

func TestVersionConflictSurfaces(t *testing.T) {
	store := newMemStore()
	w := newTestWorkflow(store, time.Now())

	record, err := w.Submit(1, 10, []string{"X"}, "")
	require.NoError(t, err)

	// Simula una escritura concurrente entre la lectura y la actualización
	stored := store.records[record.ID]
	stored.Version++

	_, err = w.Evaluate(record.ID, 80, "")
	require.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestCleanEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{"recorta y descarta vacíos", []string{" a ", "", "b", "  "}, []string{"a", "b"}},
		{"conserva el orden", []string{"c", "a", "b"}, []string{"c", "a", "b"}},
		{"no elimina duplicados", []string{"a", "a"}, []string{"a", "a"}},
		{"todo vacío", []string{"", " "}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEntries(tt.entries))
		})
	}
}
