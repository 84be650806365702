package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-services/app/entity"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionFilter struct {
	ClientID  uint64
	ServiceID uint64
	PlanID    uint64
}

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			client_id, service_id, plan_id, price, comment,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		subscription.ClientID,
		subscription.ServiceID,
		subscription.PlanID,
		subscription.Price,
		subscription.Comment,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		if isMissingReferenceError(err) {
			return ErrMissingReference
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	subscription.ID = uint64(id)
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	query := `
		SELECT id, client_id, service_id, plan_id, price, comment,
		       created_at, updated_at
		FROM subscriptions
		WHERE id = ?
	`

	item := &entity.Subscription{}
	if err := scanSubscription(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, filter SubscriptionFilter) ([]*entity.Subscription, error) {
	query := `
		SELECT id, client_id, service_id, plan_id, price, comment,
		       created_at, updated_at
		FROM subscriptions
	`

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if filter.ClientID != 0 {
		conditions = append(conditions, "client_id = ?")
		args = append(args, filter.ClientID)
	}
	if filter.ServiceID != 0 {
		conditions = append(conditions, "service_id = ?")
		args = append(args, filter.ServiceID)
	}
	if filter.PlanID != 0 {
		conditions = append(conditions, "plan_id = ?")
		args = append(args, filter.PlanID)
	}
	query += whereClause(conditions) + " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Subscription, 0)
	for rows.Next() {
		item := &entity.Subscription{}
		if err := scanSubscription(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, `DELETE FROM subscriptions WHERE id = ?`, id, ErrSubscriptionNotFound)
}

func (r *SubscriptionRepository) ListIDsByServiceID(ctx context.Context, serviceID uint64) ([]uint64, error) {
	return r.listIDs(ctx, `SELECT id FROM subscriptions WHERE service_id = ? ORDER BY id ASC`, serviceID)
}

func (r *SubscriptionRepository) ListIDsByPlanID(ctx context.Context, planID uint64) ([]uint64, error) {
	return r.listIDs(ctx, `SELECT id FROM subscriptions WHERE plan_id = ? ORDER BY id ASC`, planID)
}

func (r *SubscriptionRepository) ListIDs(ctx context.Context) ([]uint64, error) {
	return r.listIDs(ctx, `SELECT id FROM subscriptions ORDER BY id ASC`)
}

// FindPricingInput loads everything the price and comment jobs need in one round trip.
// It returns nil, nil when the subscription does not exist.
func (r *SubscriptionRepository) FindPricingInput(ctx context.Context, subscriptionID uint64) (*entity.PricingInput, error) {
	query := `
		SELECT s.id, sv.name, sv.full_price, p.plan_type, p.discount_percent
		FROM subscriptions s
		INNER JOIN services sv ON sv.id = s.service_id
		INNER JOIN plans p ON p.id = s.plan_id
		WHERE s.id = ?
	`

	item := &entity.PricingInput{}
	err := r.db.QueryRowContext(ctx, query, subscriptionID).Scan(
		&item.SubscriptionID,
		&item.ServiceName,
		&item.FullPrice,
		&item.PlanType,
		&item.DiscountPercent,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *SubscriptionRepository) UpdatePrice(ctx context.Context, id uint64, price int64, updatedAt time.Time) error {
	return r.updateColumn(ctx, `UPDATE subscriptions SET price = ?, updated_at = ? WHERE id = ?`, price, updatedAt, id)
}

func (r *SubscriptionRepository) UpdateComment(ctx context.Context, id uint64, comment string, updatedAt time.Time) error {
	return r.updateColumn(ctx, `UPDATE subscriptions SET comment = ?, updated_at = ? WHERE id = ?`, comment, updatedAt, id)
}

func (r *SubscriptionRepository) SumPrices(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(price), 0) FROM subscriptions`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *SubscriptionRepository) updateColumn(ctx context.Context, query string, value interface{}, updatedAt time.Time, id uint64) error {
	result, err := r.db.ExecContext(ctx, query, value, updatedAt, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) listIDs(ctx context.Context, query string, args ...interface{}) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func scanSubscription(scanner rowScanner, item *entity.Subscription) error {
	return scanner.Scan(
		&item.ID,
		&item.ClientID,
		&item.ServiceID,
		&item.PlanID,
		&item.Price,
		&item.Comment,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}
