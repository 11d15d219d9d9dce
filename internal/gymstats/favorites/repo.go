package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

const (
	savedWorkoutColumns  = `id, user_id, title, exercises, created_at`
	savedExerciseColumns = `id, user_id, name, type, sets, created_at`
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListWorkouts(ctx context.Context, userID string) (_ []SavedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.list-workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+savedWorkoutColumns+` FROM saved_workouts
			WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saved workouts: %w", err)
	}
	defer rows.Close()

	saved := make([]SavedWorkout, 0)
	for rows.Next() {
		sw, err := scanSavedWorkout(rows)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved workouts: %w", err)
	}
	return saved, nil
}

// CreateWorkout stores the template unless the user already has maxPerUser of them.
// Title collisions are case-insensitive.
func (r *Repo) CreateWorkout(
	ctx context.Context,
	userID, title string,
	exercises []TemplateExercise,
	maxPerUser int,
) (_ *SavedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.create-workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal template exercises: %w", err)
	}

	var created *SavedWorkout
	err = r.inTx(ctx, "saved_workouts", userID, func(tx pgx.Tx) error {
		if err := checkCap(ctx, tx, "saved_workouts", "workouts", userID, maxPerUser); err != nil {
			return err
		}

		row := tx.QueryRow(
			ctx,
			`INSERT INTO saved_workouts (user_id, title, exercises)
				VALUES ($1, $2, $3::jsonb)
			RETURNING `+savedWorkoutColumns+`;`,
			userID, strings.TrimSpace(title), string(exercisesJson),
		)
		sw, err := scanSavedWorkout(row)
		if err != nil {
			if pkg.IsUniqueViolationError(err) {
				return ErrTitleTaken
			}
			return fmt.Errorf("insert saved workout: %w", err)
		}
		created = sw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repo) DeleteWorkoutByTitle(ctx context.Context, userID, title string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.delete-workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM saved_workouts WHERE user_id = $1 AND lower(title) = lower($2);`,
		userID, strings.TrimSpace(title),
	)
	if err != nil {
		return fmt.Errorf("delete saved workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSavedWorkoutNotFound
	}
	return nil
}

func (r *Repo) ListExercises(ctx context.Context, userID string) (_ []SavedExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.list-exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+savedExerciseColumns+` FROM saved_exercises
			WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saved exercises: %w", err)
	}
	defer rows.Close()

	saved := make([]SavedExercise, 0)
	for rows.Next() {
		se, err := scanSavedExercise(rows)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *se)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved exercises: %w", err)
	}
	return saved, nil
}

func (r *Repo) CreateExercise(ctx context.Context, userID string, exercise TemplateExercise, maxPerUser int) (_ *SavedExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.create-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	setsJson, err := json.Marshal(exercise.Sets)
	if err != nil {
		return nil, fmt.Errorf("marshal template sets: %w", err)
	}

	var created *SavedExercise
	err = r.inTx(ctx, "saved_exercises", userID, func(tx pgx.Tx) error {
		if err := checkCap(ctx, tx, "saved_exercises", "exercises", userID, maxPerUser); err != nil {
			return err
		}

		row := tx.QueryRow(
			ctx,
			`INSERT INTO saved_exercises (user_id, name, type, sets)
				VALUES ($1, $2, $3, $4::jsonb)
			RETURNING `+savedExerciseColumns+`;`,
			userID, strings.TrimSpace(exercise.Name), exercise.Type, string(setsJson),
		)
		se, err := scanSavedExercise(row)
		if err != nil {
			return fmt.Errorf("insert saved exercise: %w", err)
		}
		created = se
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repo) DeleteExercise(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.delete-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("saved_exercise.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM saved_exercises WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSavedExerciseNotFound
	}
	return nil
}

// inTx runs fn holding a per-user, per-table advisory lock so the cap check and insert are atomic.
func (r *Repo) inTx(ctx context.Context, table, userID string, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = multierr.Append(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2));`, table, userID); err != nil {
		return fmt.Errorf("lock %s: %w", table, err)
	}

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func checkCap(ctx context.Context, tx pgx.Tx, table, kind, userID string, maxPerUser int) error {
	var count int
	// table is one of two constants, never user input
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM `+table+` WHERE user_id = $1;`, userID).Scan(&count); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if count >= maxPerUser {
		return &CapReachedError{Kind: kind, Limit: maxPerUser}
	}
	return nil
}

func scanSavedWorkout(row pgx.Row) (*SavedWorkout, error) {
	var sw SavedWorkout
	var exercisesJson []byte
	if err := row.Scan(&sw.ID, &sw.UserID, &sw.Title, &exercisesJson, &sw.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSavedWorkoutNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(exercisesJson, &sw.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal saved workout %d exercises: %w", sw.ID, err)
	}
	if sw.Exercises == nil {
		sw.Exercises = []TemplateExercise{}
	}
	return &sw, nil
}

func scanSavedExercise(row pgx.Row) (*SavedExercise, error) {
	var se SavedExercise
	var setsJson []byte
	if err := row.Scan(&se.ID, &se.UserID, &se.Name, &se.Type, &setsJson, &se.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSavedExerciseNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(setsJson, &se.Sets); err != nil {
		return nil, fmt.Errorf("unmarshal saved exercise %d sets: %w", se.ID, err)
	}
	if se.Sets == nil {
		se.Sets = []TemplateSet{}
	}
	return &se, nil
}
