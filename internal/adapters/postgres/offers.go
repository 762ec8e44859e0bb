package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"leaseflex/internal/domain"
)

const offerColumns = `id, created_at, updated_at, full_name, email, monthly_rent, address, city, state,
	lease_start_date, lease_end_date, months_remaining, termination_fee_known, termination_fee_amount,
	sublet_allowed, risk_score, flex_score, monthly_price, coverage_cap, deductible,
	waiting_period_days, status, requires_manual_review, requires_concierge, followup_step, last_followup_at`

type OfferRepo struct{ DB *DB }

func (r OfferRepo) Create(ctx context.Context, o domain.Offer) error {
	_, err := r.DB.Pool.Exec(ctx, `INSERT INTO offers (`+offerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)`,
		o.ID, o.CreatedAt, o.UpdatedAt, o.FullName, o.Email, o.MonthlyRent, o.Address, o.City, o.State,
		o.LeaseStartDate.Time(), o.LeaseEndDate.Time(), o.MonthsRemaining, o.TerminationFeeKnown, o.TerminationFeeAmount,
		string(o.SubletAllowed), o.RiskScore, o.FlexScore, o.MonthlyPrice, o.CoverageCap, o.Deductible,
		o.WaitingPeriodDays, string(o.Status), o.RequiresManualReview, o.RequiresConcierge, o.FollowupStep, o.LastFollowupAt)
	return err
}

func (r OfferRepo) Get(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id=$1`, id)
	return scanOffer(row)
}

func (r OfferRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus, at time.Time) (domain.Offer, error) {
	row := r.DB.Pool.QueryRow(ctx, `UPDATE offers SET status=$2, updated_at=$3
		WHERE id=$1 RETURNING `+offerColumns, id, string(status), at)
	return scanOffer(row)
}

func (r OfferRepo) AttachContact(ctx context.Context, id uuid.UUID, fullName, email string, at time.Time) (domain.Offer, error) {
	row := r.DB.Pool.QueryRow(ctx, `UPDATE offers
		SET full_name=COALESCE(NULLIF($2, ''), full_name), email=$3, status=$4, updated_at=$5
		WHERE id=$1 RETURNING `+offerColumns, id, fullName, email, string(domain.StatusEmailed), at)
	return scanOffer(row)
}

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var (
		o              domain.Offer
		start, end     time.Time
		feeAmount      decimal.NullDecimal
		sublet, status string
	)
	err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.FullName, &o.Email, &o.MonthlyRent, &o.Address, &o.City, &o.State,
		&start, &end, &o.MonthsRemaining, &o.TerminationFeeKnown, &feeAmount,
		&sublet, &o.RiskScore, &o.FlexScore, &o.MonthlyPrice, &o.CoverageCap, &o.Deductible,
		&o.WaitingPeriodDays, &status, &o.RequiresManualReview, &o.RequiresConcierge, &o.FollowupStep, &o.LastFollowupAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Offer{}, domain.ErrOfferNotFound
	}
	if err != nil {
		return domain.Offer{}, err
	}
	o.LeaseStartDate = domain.DateOf(start)
	o.LeaseEndDate = domain.DateOf(end)
	if feeAmount.Valid {
		o.TerminationFeeAmount = &feeAmount.Decimal
	}
	o.SubletAllowed = domain.SubletAllowed(sublet)
	o.Status = domain.OfferStatus(status)
	return o, nil
}
