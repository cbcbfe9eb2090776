package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/google/uuid"
)

type sqlOrders struct {
	db *sql.DB
}

func (r *sqlOrders) Create(ctx context.Context, order *model.GiftOrder) (*model.GiftOrder, error) {
	o := *order
	o.ID = uuid.NewString()
	if o.Status == "" {
		o.Status = model.StatusPending
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	query := `
		INSERT INTO gift_orders (id, user_id, tracking_id, recipient_name, recipient_contact,
			gift_type, gift_value, challenge, message, duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.UserID, o.TrackingID, o.RecipientName, o.RecipientContact,
		o.GiftType, o.GiftValue, o.Challenge, o.Message, o.Duration, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTrackingID
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &o, nil
}

func (r *sqlOrders) ListByUser(ctx context.Context, userID string) ([]model.GiftOrder, error) {
	query := `
		SELECT id, user_id, tracking_id, recipient_name, recipient_contact,
			gift_type, gift_value, challenge, message, duration, status, created_at, updated_at
		FROM gift_orders WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	orders := []model.GiftOrder{}
	for rows.Next() {
		var o model.GiftOrder
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return orders, nil
}

func scanOrder(rows *sql.Rows, o *model.GiftOrder) error {
	err := rows.Scan(&o.ID, &o.UserID, &o.TrackingID, &o.RecipientName, &o.RecipientContact,
		&o.GiftType, &o.GiftValue, &o.Challenge, &o.Message, &o.Duration, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
