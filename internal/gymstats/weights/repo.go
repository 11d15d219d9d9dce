package weights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

const weightColumns = `id, user_id, value, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+weightColumns+` FROM weights
			WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query weights: %w", err)
	}
	defer rows.Close()

	weights := make([]Weight, 0)
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		weights = append(weights, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights: %w", err)
	}

	span.SetAttributes(attribute.Int("weights.count", len(weights)))
	return weights, nil
}

func (r *Repo) ExistsOnDate(ctx context.Context, userID string, date time.Time) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.exists-on-date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM weights WHERE user_id = $1 AND created_at = $2::date);`,
		userID, pkg.DateOnly(date),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check weight exists: %w", err)
	}
	return exists, nil
}

func (r *Repo) Create(ctx context.Context, userID string, value float64, date time.Time) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO weights (user_id, value, created_at)
			VALUES ($1, $2, $3::date)
		RETURNING `+weightColumns+`;`,
		userID, value, pkg.DateOnly(date),
	)

	w, err := scanWeight(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrWeightExists
		}
		return nil, fmt.Errorf("insert weight: %w", err)
	}
	return w, nil
}

func (r *Repo) Update(ctx context.Context, userID string, id int, value float64) (_ *Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("weight.id", id))

	row := r.db.QueryRow(
		ctx,
		`UPDATE weights SET value = $3
			WHERE id = $1 AND user_id = $2
		RETURNING `+weightColumns+`;`,
		id, userID, value,
	)
	return scanWeight(row)
}

func (r *Repo) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("weight.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM weights WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWeightNotFound
	}
	return nil
}

func scanWeight(row pgx.Row) (*Weight, error) {
	var w Weight
	if err := row.Scan(&w.ID, &w.UserID, &w.Value, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeightNotFound
		}
		return nil, err
	}
	return &w, nil
}
