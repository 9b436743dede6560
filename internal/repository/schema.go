package repository

import (
	"context"
	"time"
)

// Bootstrap crea las tablas si todavía no existen.
func (r *Repository) Bootstrap() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			version INTEGER NOT NULL DEFAULT 1,
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			executive_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			version INTEGER NOT NULL DEFAULT 1,
			CONSTRAINT clients_name_key UNIQUE (name),
			CONSTRAINT clients_executive_id_fkey FOREIGN KEY (executive_id) REFERENCES users (id)
		)`,
		`CREATE TABLE IF NOT EXISTS task_records (
			id BIGSERIAL PRIMARY KEY,
			executive_id BIGINT NOT NULL,
			client_id BIGINT NOT NULL,
			evidence TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'borrador',
			score INTEGER NOT NULL DEFAULT 0,
			admin_notes TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			version INTEGER NOT NULL DEFAULT 1,
			CONSTRAINT task_records_executive_id_fkey FOREIGN KEY (executive_id) REFERENCES users (id),
			CONSTRAINT task_records_client_id_fkey FOREIGN KEY (client_id) REFERENCES clients (id)
		)`,
		// Garantiza a nivel de base de datos que solo exista un registro activo
		// por par (ejecutivo, cliente)
		`CREATE UNIQUE INDEX IF NOT EXISTS task_records_active_pair_key
			ON task_records (executive_id, client_id)
			WHERE status <> 'finalizada'`,
		`CREATE TABLE IF NOT EXISTS task_record_entries (
			id BIGSERIAL PRIMARY KEY,
			task_record_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			entry TEXT NOT NULL,
			CONSTRAINT task_record_entries_task_record_id_fkey
				FOREIGN KEY (task_record_id) REFERENCES task_records (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			sender_id BIGINT NOT NULL,
			recipient_id BIGINT NOT NULL,
			body TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT messages_sender_id_fkey FOREIGN KEY (sender_id) REFERENCES users (id),
			CONSTRAINT messages_recipient_id_fkey FOREIGN KEY (recipient_id) REFERENCES users (id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.dbpool.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
