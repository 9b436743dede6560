package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
)

// GetActiveTaskRecord busca el registro no finalizado del par (ejecutivo, cliente).
// Devuelve domain.ErrNotFound si solo existen registros finalizados o ninguno.
func (r *Repository) GetActiveTaskRecord(executiveID int64, clientID int64) (*domain.TaskRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, evidence, status, score, admin_notes, submitted_at, created_at, version
		FROM task_records
		WHERE executive_id = $1 AND client_id = $2 AND status <> $3
	`

	record := &domain.TaskRecord{
		ExecutiveID: executiveID,
		ClientID:    clientID,
	}

	dst := []any{&record.ID, &record.Evidence, &record.Status, &record.Score, &record.AdminNotes, &record.SubmittedAt, &record.CreatedAt, &record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, executiveID, clientID, domain.StatusFinalized).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	entries, err := r.getTaskRecordEntries(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Entries = entries

	return record, nil
}

func (r *Repository) GetTaskRecordByID(id int64) (*domain.TaskRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT executive_id, client_id, evidence, status, score, admin_notes, submitted_at, created_at, version
		FROM task_records
		WHERE id = $1
	`

	record := &domain.TaskRecord{
		ID: id,
	}

	dst := []any{&record.ExecutiveID, &record.ClientID, &record.Evidence, &record.Status, &record.Score, &record.AdminNotes, &record.SubmittedAt, &record.CreatedAt, &record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	entries, err := r.getTaskRecordEntries(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Entries = entries

	return record, nil
}

func (r *Repository) CreateTaskRecord(record *domain.TaskRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO task_records (executive_id, client_id, evidence, status, score, admin_notes, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{record.ExecutiveID, record.ClientID, record.Evidence, record.Status, record.Score, record.AdminNotes, record.SubmittedAt}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.Version); err != nil {
		return err
	}

	if err := insertTaskRecordEntries(ctx, tx, record.ID, record.Entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateTaskRecord sobrescribe el registro y sus actividades. La condición
// sobre version evita que dos escrituras concurrentes se pisen entre sí;
// en caso de conflicto devuelve domain.ErrVersionConflict.
func (r *Repository) UpdateTaskRecord(record *domain.TaskRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE task_records
		SET
			evidence = $1,
			status = $2,
			score = $3,
			admin_notes = $4,
			submitted_at = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	args := []any{record.Evidence, record.Status, record.Score, record.AdminNotes, record.SubmittedAt, record.ID, record.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt, &record.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrVersionConflict
		}
		return err
	}

	// Las actividades se reemplazan completas en la misma transacción
	query = `DELETE FROM task_record_entries WHERE task_record_id = $1`
	if _, err := tx.ExecContext(ctx, query, record.ID); err != nil {
		return err
	}

	if err := insertTaskRecordEntries(ctx, tx, record.ID, record.Entries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTaskRecordsByStatus(status domain.TaskStatus) ([]*domain.TaskRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT tr.id, tr.executive_id, tr.client_id, tr.evidence, tr.status, tr.score, tr.admin_notes, tr.submitted_at, tr.created_at, tr.version, tre.entry
		FROM task_records tr
		LEFT JOIN task_record_entries tre ON tre.task_record_id = tr.id
		WHERE tr.status = $1
		ORDER BY tr.created_at DESC, tr.id, tre.position
	`

	return r.queryTaskRecords(ctx, query, status)
}

func (r *Repository) GetTaskRecordsByExecutiveID(executiveID int64) ([]*domain.TaskRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT tr.id, tr.executive_id, tr.client_id, tr.evidence, tr.status, tr.score, tr.admin_notes, tr.submitted_at, tr.created_at, tr.version, tre.entry
		FROM task_records tr
		LEFT JOIN task_record_entries tre ON tre.task_record_id = tr.id
		WHERE tr.executive_id = $1
		ORDER BY tr.created_at DESC, tr.id, tre.position
	`

	return r.queryTaskRecords(ctx, query, executiveID)
}

func (r *Repository) queryTaskRecords(ctx context.Context, query string, args ...any) ([]*domain.TaskRecord, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.TaskRecord, 0)
	recordsMap := make(map[int64]*domain.TaskRecord)

	for rows.Next() {
		record := &domain.TaskRecord{}
		var entry sql.NullString

		dst := []any{&record.ID, &record.ExecutiveID, &record.ClientID, &record.Evidence, &record.Status, &record.Score, &record.AdminNotes, &record.SubmittedAt, &record.CreatedAt, &record.Version, &entry}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, ok := recordsMap[record.ID]
		if !ok {
			record.Entries = make([]string, 0)
			recordsMap[record.ID] = record
			records = append(records, record)
			existing = record
		}

		if entry.Valid {
			existing.Entries = append(existing.Entries, entry.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) getTaskRecordEntries(ctx context.Context, recordID int64) ([]string, error) {
	query := `
		SELECT entry FROM task_record_entries
		WHERE task_record_id = $1
		ORDER BY position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]string, 0)
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func insertTaskRecordEntries(ctx context.Context, tx *sql.Tx, recordID int64, entries []string) error {
	query := `
		INSERT INTO task_record_entries (task_record_id, position, entry)
		VALUES ($1, $2, $3)
	`

	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, recordID, i, entry); err != nil {
			return err
		}
	}

	return nil
}
