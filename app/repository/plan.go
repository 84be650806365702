package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (plan_type, discount_percent, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.PlanType,
		plan.DiscountPercent,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	plan.ID = uint64(id)
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	query := `
		UPDATE plans
		SET plan_type = ?, discount_percent = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.PlanType,
		plan.DiscountPercent,
		plan.UpdatedAt,
		plan.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint64) (*entity.Plan, error) {
	query := `
		SELECT id, plan_type, discount_percent, created_at, updated_at
		FROM plans
		WHERE id = ?
	`

	item := &entity.Plan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.PlanType,
		&item.DiscountPercent,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *PlanRepository) List(ctx context.Context, planType string) ([]*entity.Plan, error) {
	query := `
		SELECT id, plan_type, discount_percent, created_at, updated_at
		FROM plans
	`

	conditions := make([]string, 0, 1)
	args := make([]interface{}, 0, 1)
	if planType != "" {
		conditions = append(conditions, "plan_type = ?")
		args = append(args, planType)
	}
	query += whereClause(conditions) + " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Plan, 0)
	for rows.Next() {
		item := &entity.Plan{}
		if err := rows.Scan(&item.ID, &item.PlanType, &item.DiscountPercent, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, `DELETE FROM plans WHERE id = ?`, id, ErrPlanNotFound)
}
