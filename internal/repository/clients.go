package repository

import (
	"context"
	"time"

	"github.com/haylex-sistemas/haylex/backend/internal/domain"
)

func (r *Repository) CreateClient(client *domain.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO clients (name, executive_id)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, client.Name, client.ExecutiveID).Scan(&client.ID, &client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetClientByID(id int64) (*domain.Client, error) {
	query := `
		SELECT name, executive_id, created_at, version
		FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	client := &domain.Client{
		ID: id,
	}

	dst := []any{&client.Name, &client.ExecutiveID, &client.CreatedAt, &client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *Repository) GetAllClients() ([]*domain.Client, error) {
	query := `
		SELECT id, name, executive_id, created_at, version
		FROM clients
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		dst := []any{&client.ID, &client.Name, &client.ExecutiveID, &client.CreatedAt, &client.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// GetClientsByExecutiveID devuelve la cartera de clientes asignada a un ejecutivo.
func (r *Repository) GetClientsByExecutiveID(executiveID int64) ([]*domain.Client, error) {
	query := `
		SELECT id, name, created_at, version
		FROM clients
		WHERE executive_id = $1
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, executiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{
			ExecutiveID: executiveID,
		}
		dst := []any{&client.ID, &client.Name, &client.CreatedAt, &client.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *Repository) UpdateClient(client *domain.Client) error {
	query := `
		UPDATE clients
		SET
			name = $1,
			executive_id = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{client.Name, client.ExecutiveID, client.ID, client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteClient(id int64) error {
	query := `
		DELETE FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
