package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

const userColumns = `id, name, email, password_hash, goal_mode, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, name, email, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id := uuid.New().String()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO users (id, name, email, password_hash)
			VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`;`,
		id, strings.TrimSpace(name), strings.TrimSpace(email), passwordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	return scanUser(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get-by-email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1);`,
		strings.TrimSpace(email),
	)
	return scanUser(row)
}

func (r *Repo) Update(ctx context.Context, id string, patch Patch) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(
		ctx,
		`UPDATE users SET
				name = COALESCE($2, name),
				email = COALESCE($3, email),
				goal_mode = COALESCE($4, goal_mode)
			WHERE id = $1
		RETURNING `+userColumns+`;`,
		id, trimmed(patch.Name), trimmed(patch.Email), patch.GoalMode,
	)

	user, err := scanUser(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user with everything they own, children first.
func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				log.Errorf("delete user %s, rollback: %s", id, rollbackErr)
			}
		}
	}()

	statements := []string{
		`DELETE FROM sets WHERE exercise_id IN (SELECT id FROM exercises WHERE user_id = $1);`,
		`DELETE FROM exercises WHERE user_id = $1;`,
		`DELETE FROM workouts WHERE user_id = $1;`,
		`DELETE FROM weights WHERE user_id = $1;`,
		`DELETE FROM saved_workouts WHERE user_id = $1;`,
		`DELETE FROM saved_exercises WHERE user_id = $1;`,
	}
	for _, stmt := range statements {
		if _, err = tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete user data: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrUserNotFound
		return err
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var goalMode string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &goalMode, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.GoalMode = GoalMode(goalMode)
	return &u, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
