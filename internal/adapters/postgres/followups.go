package postgres

import (
	"context"

	"leaseflex/internal/ports"
)

type FollowupRepo struct{ DB *DB }

// ClaimDue locks due offers with SKIP LOCKED and advances their step in the
// same transaction, so concurrent workers never claim the same offer.
func (r FollowupRepo) ClaimDue(ctx context.Context, c ports.FollowupClaim) ([]ports.FollowupJob, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		WITH due AS (
			SELECT id, last_followup_at FROM offers
			WHERE followup_step=$1-1
			  AND email IS NOT NULL
			  AND status IN ('quoted', 'emailed')
			  AND created_at < $2
			  AND (last_followup_at IS NULL OR last_followup_at < $3)
			ORDER BY created_at
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		)
		UPDATE offers o SET followup_step=$1, last_followup_at=$4
		FROM due
		WHERE o.id = due.id
		RETURNING o.id, o.email, due.last_followup_at`, c.Step, c.CreatedBefore, c.LastSentBefore, c.At, c.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []ports.FollowupJob
	for rows.Next() {
		j := ports.FollowupJob{Step: c.Step}
		if err := rows.Scan(&j.OfferID, &j.Email, &j.PrevSentAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r FollowupRepo) Release(ctx context.Context, job ports.FollowupJob) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE offers SET followup_step=$2-1, last_followup_at=$3
		WHERE id=$1 AND followup_step=$2`, job.OfferID, job.Step, job.PrevSentAt)
	return err
}
