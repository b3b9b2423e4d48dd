package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stagelink-backend/internal/domains/show/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// postgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const showColumns = `
	id, producer_id, title, description, genres, director, duration,
	date, metadata, venue, city, niche,
	price, reservation_fee, ticket_link, payment_instructions, collect_balance_onsite,
	cast_members, tags, poster_url,
	status, production_status, deleted_at, is_featured, created_at
`

func (r *postgresRepository) Insert(ctx context.Context, show *model.Show) error {
	query := `
		INSERT INTO shows (
			id, producer_id, title, description, genres, director, duration,
			date, metadata, venue, city, niche,
			price, reservation_fee, ticket_link, payment_instructions, collect_balance_onsite,
			cast_members, tags, poster_url,
			status, production_status, is_featured
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23
		)
	`

	metadata, castMembers, err := encodeJSONFields(show)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		show.ID,
		show.ProducerID,
		show.Title,
		show.Description,
		nullableArray(show.Genres),
		show.Director,
		show.Duration,
		show.Date,
		metadata,
		show.Venue,
		show.City,
		show.Niche,
		show.Price,
		show.ReservationFee,
		show.TicketLink,
		show.PaymentInstructions,
		show.CollectBalanceOnsite,
		castMembers,
		nullableArray(show.Tags),
		show.PosterURL,
		show.Status,
		show.ProductionStatus,
		show.IsFeatured,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("producer %s does not exist: %w", show.ProducerID, err)
		}
		return fmt.Errorf("insert show: %w", err)
	}

	return nil
}

// Update rewrites content fields only. Status, deletion and featuring
// have dedicated methods; the authoring path cannot touch them.
func (r *postgresRepository) Update(ctx context.Context, show *model.Show) error {
	query := `
		UPDATE shows SET
			title = $2, description = $3, genres = $4, director = $5, duration = $6,
			date = $7, metadata = $8, venue = $9, city = $10, niche = $11,
			price = $12, reservation_fee = $13, ticket_link = $14,
			payment_instructions = $15, collect_balance_onsite = $16,
			cast_members = $17, tags = $18, poster_url = $19,
			production_status = $20
		WHERE id = $1 AND deleted_at IS NULL
	`

	metadata, castMembers, err := encodeJSONFields(show)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query,
		show.ID,
		show.Title,
		show.Description,
		nullableArray(show.Genres),
		show.Director,
		show.Duration,
		show.Date,
		metadata,
		show.Venue,
		show.City,
		show.Niche,
		show.Price,
		show.ReservationFee,
		show.TicketLink,
		show.PaymentInstructions,
		show.CollectBalanceOnsite,
		castMembers,
		nullableArray(show.Tags),
		show.PosterURL,
		show.ProductionStatus,
	)
	if err != nil {
		return fmt.Errorf("update show: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShowNotFound
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Show, error) {
	query := fmt.Sprintf(`SELECT %s FROM shows WHERE id = $1`, showColumns)

	row := r.pool.QueryRow(ctx, query, id)
	show, err := scanShow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}

	return show, nil
}

func (r *postgresRepository) ListByProducer(ctx context.Context, producerID uuid.UUID) ([]model.Show, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM shows
		WHERE producer_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, showColumns)

	return r.queryShows(ctx, query, producerID)
}

func (r *postgresRepository) ListApproved(ctx context.Context) ([]model.Show, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM shows
		WHERE status = 'approved' AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, showColumns)

	return r.queryShows(ctx, query)
}

func (r *postgresRepository) ListForAdmin(ctx context.Context, filter AdminFilter) ([]model.Show, error) {
	if filter.Deleted {
		query := fmt.Sprintf(`
			SELECT %s FROM shows
			WHERE deleted_at IS NOT NULL
			ORDER BY deleted_at DESC
		`, showColumns)
		return r.queryShows(ctx, query)
	}

	if filter.Status == "" || filter.Status == "all" {
		query := fmt.Sprintf(`
			SELECT %s FROM shows
			WHERE deleted_at IS NULL
			ORDER BY created_at DESC
		`, showColumns)
		return r.queryShows(ctx, query)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM shows
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, showColumns)
	return r.queryShows(ctx, query, filter.Status)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShowStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE shows SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update show status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShowNotFound
	}
	return nil
}

func (r *postgresRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	var query string
	if deleted {
		query = `UPDATE shows SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	} else {
		query = `UPDATE shows SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`
	}

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set show deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShowNotFound
	}
	return nil
}

func (r *postgresRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE shows SET is_featured = $2 WHERE id = $1`, id, featured)
	if err != nil {
		return fmt.Errorf("set show featured: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrShowNotFound
	}
	return nil
}

// ==================== helpers ====================

func (r *postgresRepository) queryShows(ctx context.Context, query string, args ...interface{}) ([]model.Show, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	shows := make([]model.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, *show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return shows, nil
}

func scanShow(row pgx.Row) (*model.Show, error) {
	var (
		show        model.Show
		genres      pq.StringArray
		tags        pq.StringArray
		metadata    []byte
		castMembers []byte
	)

	err := row.Scan(
		&show.ID,
		&show.ProducerID,
		&show.Title,
		&show.Description,
		&genres,
		&show.Director,
		&show.Duration,
		&show.Date,
		&metadata,
		&show.Venue,
		&show.City,
		&show.Niche,
		&show.Price,
		&show.ReservationFee,
		&show.TicketLink,
		&show.PaymentInstructions,
		&show.CollectBalanceOnsite,
		&castMembers,
		&tags,
		&show.PosterURL,
		&show.Status,
		&show.ProductionStatus,
		&show.DeletedAt,
		&show.IsFeatured,
		&show.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	show.Genres = genres
	show.Tags = tags

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &show.Metadata); err != nil {
			return nil, fmt.Errorf("decode show metadata: %w", err)
		}
	}
	if len(castMembers) > 0 {
		if err := json.Unmarshal(castMembers, &show.CastMembers); err != nil {
			return nil, fmt.Errorf("decode cast members: %w", err)
		}
	}

	return &show, nil
}

// encodeJSONFields marshals the JSONB columns. Empty collections are
// stored as NULL, the storage convention the edit form round-trip
// depends on.
func encodeJSONFields(show *model.Show) (metadata, castMembers []byte, err error) {
	metadata, err = json.Marshal(show.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("encode show metadata: %w", err)
	}

	if len(show.CastMembers) > 0 {
		castMembers, err = json.Marshal(show.CastMembers)
		if err != nil {
			return nil, nil, fmt.Errorf("encode cast members: %w", err)
		}
	}

	return metadata, castMembers, nil
}

// nullableArray maps an empty collection to NULL
func nullableArray(values pq.StringArray) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values
}
