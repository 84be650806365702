package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceAlreadyExists = errors.New("service already exists")
)

type ServiceRepository struct {
	db DBTX
}

func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (name, full_price, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.FullPrice,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrServiceAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	service.ID = uint64(id)
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET name = ?, full_price = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.FullPrice,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrServiceAlreadyExists
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint64) (*entity.Service, error) {
	query := `
		SELECT id, name, full_price, created_at, updated_at
		FROM services
		WHERE id = ?
	`

	item := &entity.Service{}
	err := scanService(r.db.QueryRowContext(ctx, query, id), item)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*entity.Service, error) {
	query := `
		SELECT id, name, full_price, created_at, updated_at
		FROM services
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Service, 0)
	for rows.Next() {
		item := &entity.Service{}
		if err := scanService(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, `DELETE FROM services WHERE id = ?`, id, ErrServiceNotFound)
}

func scanService(scanner rowScanner, item *entity.Service) error {
	return scanner.Scan(
		&item.ID,
		&item.Name,
		&item.FullPrice,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}
