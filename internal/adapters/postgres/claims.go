package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leaseflex/internal/domain"
)

type ClaimRepo struct{ DB *DB }

func (r ClaimRepo) Create(ctx context.Context, c domain.Claim) error {
	_, err := r.DB.Pool.Exec(ctx, `INSERT INTO claims
		(id, created_at, email, offer_id, event_type, event_description, event_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.CreatedAt, c.Email, c.OfferID, string(c.EventType), c.EventDescription, c.EventDate.Time(), string(c.Status))
	return err
}

func (r ClaimRepo) Get(ctx context.Context, id uuid.UUID) (domain.Claim, error) {
	var (
		c                 domain.Claim
		eventType, status string
		eventDate         time.Time
	)
	err := r.DB.Pool.QueryRow(ctx, `SELECT id, created_at, email, offer_id, event_type, event_description, event_date, status
		FROM claims WHERE id=$1`, id).
		Scan(&c.ID, &c.CreatedAt, &c.Email, &c.OfferID, &eventType, &c.EventDescription, &eventDate, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	if err != nil {
		return domain.Claim{}, err
	}
	c.EventType = domain.ClaimEventType(eventType)
	c.EventDate = domain.DateOf(eventDate)
	c.Status = domain.ClaimStatus(status)
	return c, nil
}
