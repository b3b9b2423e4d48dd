package repository

import (
	"context"
	"errors"
	"fmt"

	"stagelink-backend/internal/domains/payment/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const paymentColumns = `
	id, show_id, user_id, guest_name, guest_email,
	amount_cents, proof_key, proof_url,
	status, created_at, reviewed_at
`

func (r *postgresRepository) Insert(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (
			id, show_id, user_id, guest_name, guest_email,
			amount_cents, proof_key, proof_url, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.ShowID,
		payment.UserID,
		payment.GuestName,
		payment.GuestEmail,
		payment.AmountCents,
		payment.ProofKey,
		payment.ProofURL,
		payment.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("show %s does not exist: %w", payment.ShowID, err)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return payment, nil
}

func (r *postgresRepository) ListForReview(ctx context.Context, filter model.ReviewFilter) ([]model.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments`, paymentColumns)
	var (
		conds []string
		args  []interface{}
	)

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ShowID != nil {
		args = append(args, *filter.ShowID)
		conds = append(conds, fmt.Sprintf("show_id = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at ASC"

	return r.queryPayments(ctx, query, args...)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, paymentColumns)

	return r.queryPayments(ctx, query, userID)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	query := `
		UPDATE payments
		SET status = $2, reviewed_at = now()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a double review
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return model.ErrAlreadyReviewed
	}

	return nil
}

func (r *postgresRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := make([]model.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(
		&p.ID,
		&p.ShowID,
		&p.UserID,
		&p.GuestName,
		&p.GuestEmail,
		&p.AmountCents,
		&p.ProofKey,
		&p.ProofURL,
		&p.Status,
		&p.CreatedAt,
		&p.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
