package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

var ErrClientNotFound = errors.New("client not found")

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (company_name, created_at, updated_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, client.CompanyName, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	client.ID = uint64(id)
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint64) (*entity.Client, error) {
	query := `
		SELECT id, company_name, created_at, updated_at
		FROM clients
		WHERE id = ?
	`

	item := &entity.Client{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.CompanyName, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	query := `
		SELECT id, company_name, created_at, updated_at
		FROM clients
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Client, 0)
	for rows.Next() {
		item := &entity.Client{}
		if err := rows.Scan(&item.ID, &item.CompanyName, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, `DELETE FROM clients WHERE id = ?`, id, ErrClientNotFound)
}
