package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/google/uuid"
)

type sqlContacts struct {
	db *sql.DB
}

func (r *sqlContacts) Create(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	c := *contact
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO contacts (id, user_id, name, email, phone, relationship, birthday, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Relationship, c.Birthday, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &c, nil
}

func (r *sqlContacts) ListByUser(ctx context.Context, userID string) ([]model.Contact, error) {
	query := `
		SELECT id, user_id, name, email, phone, relationship, birthday, created_at
		FROM contacts WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
			&c.Relationship, &c.Birthday, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contacts, nil
}

// Delete removes the contact only when owned by userID, so a foreign id
// behaves exactly like a nonexistent one. Special dates go with it via
// the ON DELETE CASCADE clause, keeping the whole delete one statement.
func (r *sqlContacts) Delete(ctx context.Context, userID, contactID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *sqlContacts) Owned(ctx context.Context, userID, contactID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

type sqlSpecialDates struct {
	db *sql.DB
}

func (r *sqlSpecialDates) Create(ctx context.Context, date *model.SpecialDate) (*model.SpecialDate, error) {
	d := *date
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO special_dates (id, contact_id, date_name, date_value, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.ContactID, d.DateName, d.DateValue, d.Notes, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &d, nil
}

func (r *sqlSpecialDates) ListByContact(ctx context.Context, contactID string) ([]model.SpecialDate, error) {
	query := `
		SELECT id, contact_id, date_name, date_value, notes, created_at
		FROM special_dates WHERE contact_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	dates := []model.SpecialDate{}
	for rows.Next() {
		var d model.SpecialDate
		if err := rows.Scan(&d.ID, &d.ContactID, &d.DateName, &d.DateValue, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dates, nil
}

// Delete removes a special date only when its parent contact belongs to
// userID; ownership is transitive through the contact.
func (r *sqlSpecialDates) Delete(ctx context.Context, userID, dateID string) (bool, error) {
	query := `
		DELETE FROM special_dates
		WHERE id = $1 AND contact_id IN (SELECT id FROM contacts WHERE user_id = $2)`

	res, err := r.db.ExecContext(ctx, query, dateID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
