package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

// nestedWorkoutsQuery assembles workout -> exercises -> sets in one round trip.
// Workouts without exercises, and exercises without sets, get empty arrays.
const nestedWorkoutsQuery = `
	SELECT
		w.id, w.user_id, w.title, w.created_at,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', e.id,
				'workout_id', e.workout_id,
				'name', e.name,
				'type', e.type,
				'order_index', e.order_index,
				'sets', COALESCE((
					SELECT json_agg(json_build_object(
						'id', s.id,
						'exercise_id', s.exercise_id,
						'reps', s.reps,
						'weight', s.weight,
						'duration', s.duration,
						'distance', s.distance,
						'distance_unit', s.distance_unit
					) ORDER BY s.id)
					FROM sets s
					WHERE s.exercise_id = e.id
				), '[]'::json)
			) ORDER BY e.order_index, e.id)
			FROM exercises e
			WHERE e.workout_id = w.id
		), '[]'::json) AS exercises
	FROM workouts w
	WHERE w.user_id = $1 AND ($2::bigint = 0 OR w.id = $2)
	ORDER BY w.created_at DESC, w.id DESC;`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	workouts, err := queryNested(ctx, r.db, userID, 0)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

func (r *Repo) Get(ctx context.Context, userID string, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	return getNested(ctx, r.db, userID, id)
}

// Create inserts the workout with all of its exercises and sets in one transaction.
// A per-user advisory lock serializes concurrent creates, so the daily count check
// cannot be raced.
func (r *Repo) Create(ctx context.Context, userID string, workout NewWorkout, maxPerDay int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var created *Workout
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, userID); err != nil {
			return fmt.Errorf("lock user workouts: %w", err)
		}

		dayStart, nextDayStart := pkg.DayBounds(workout.CreatedAt)
		var countToday int
		if err := tx.QueryRow(
			ctx,
			`SELECT count(*) FROM workouts WHERE user_id = $1 AND created_at >= $2 AND created_at < $3;`,
			userID, dayStart, nextDayStart,
		).Scan(&countToday); err != nil {
			return fmt.Errorf("count workouts for day: %w", err)
		}
		if countToday >= maxPerDay {
			return &DailyLimitError{Day: dayStart, Count: countToday, Limit: maxPerDay}
		}

		var workoutID int
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO workouts (user_id, title, created_at) VALUES ($1, $2, $3) RETURNING id;`,
			userID, workout.Title, workout.CreatedAt,
		).Scan(&workoutID); err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		span.SetAttributes(attribute.Int("workout.id", workoutID))

		if err := insertExercises(ctx, tx, userID, workoutID, workout.Exercises); err != nil {
			return err
		}

		created, err = getNested(ctx, tx, userID, workoutID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update is a full replace: title and date are updated in place, and all
// exercises/sets are dropped and re-inserted from the given workout.
// A zero CreatedAt keeps the stored date. The daily limit only gates Create.
func (r *Repo) Update(ctx context.Context, userID string, id int, workout NewWorkout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	var updated *Workout
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`UPDATE workouts SET
					title = $1,
					created_at = COALESCE($2, created_at)
				WHERE id = $3 AND user_id = $4;`,
			workout.Title, nullTime(workout.CreatedAt), id, userID,
		)
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrWorkoutNotFound
		}

		if err := deleteWorkoutChildren(ctx, tx, id); err != nil {
			return err
		}

		if err := insertExercises(ctx, tx, userID, id, workout.Exercises); err != nil {
			return err
		}

		updated, err = getNested(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes sets, then exercises, then the workout itself.
func (r *Repo) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwnedWorkout(ctx, tx, userID, id); err != nil {
			return err
		}

		if err := deleteWorkoutChildren(ctx, tx, id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2;`, id, userID); err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}
		return nil
	})
}

// UpdateExercise replaces name, type and all sets of an exercise owned (through its workout) by userID.
func (r *Repo) UpdateExercise(ctx context.Context, userID string, exerciseID int, exercise NewExercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	var updated Exercise
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwnedExercise(ctx, tx, userID, exerciseID); err != nil {
			return err
		}

		if err := tx.QueryRow(
			ctx,
			`UPDATE exercises SET name = $1, type = $2 WHERE id = $3
			RETURNING id, workout_id, name, type, order_index;`,
			exercise.Name, exercise.Type, exerciseID,
		).Scan(&updated.ID, &updated.WorkoutID, &updated.Name, &updated.Type, &updated.OrderIndex); err != nil {
			return fmt.Errorf("update exercise: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM sets WHERE exercise_id = $1;`, exerciseID); err != nil {
			return fmt.Errorf("delete exercise sets: %w", err)
		}

		sets, err := insertSets(ctx, tx, exerciseID, exercise.Sets)
		if err != nil {
			return err
		}
		updated.Sets = sets
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *Repo) DeleteExercise(ctx context.Context, userID string, exerciseID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwnedExercise(ctx, tx, userID, exerciseID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM sets WHERE exercise_id = $1;`, exerciseID); err != nil {
			return fmt.Errorf("delete exercise sets: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE id = $1;`, exerciseID); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		return nil
	})
}

func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				log.Errorf("workouts repo, rollback: %s", rollbackErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func lockOwnedWorkout(ctx context.Context, q querier, userID string, id int) error {
	var found int
	err := q.QueryRow(
		ctx,
		`SELECT id FROM workouts WHERE id = $1 AND user_id = $2 FOR UPDATE;`,
		id, userID,
	).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrWorkoutNotFound
	}
	return err
}

func lockOwnedExercise(ctx context.Context, q querier, userID string, exerciseID int) error {
	var found int
	err := q.QueryRow(
		ctx,
		`SELECT e.id
			FROM exercises e
			JOIN workouts w ON w.id = e.workout_id
		WHERE e.id = $1 AND w.user_id = $2
		FOR UPDATE OF e;`,
		exerciseID, userID,
	).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrExerciseNotFound
	}
	return err
}

// deleteWorkoutChildren removes sets before exercises, children before parents.
func deleteWorkoutChildren(ctx context.Context, q querier, workoutID int) error {
	if _, err := q.Exec(
		ctx,
		`DELETE FROM sets WHERE exercise_id IN (SELECT id FROM exercises WHERE workout_id = $1);`,
		workoutID,
	); err != nil {
		return fmt.Errorf("delete workout sets: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM exercises WHERE workout_id = $1;`, workoutID); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}
	return nil
}

func insertExercises(ctx context.Context, q querier, userID string, workoutID int, exercises []NewExercise) error {
	for i, exercise := range exercises {
		var exerciseID int
		if err := q.QueryRow(
			ctx,
			`INSERT INTO exercises (workout_id, user_id, name, type, order_index)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
			workoutID, userID, exercise.Name, exercise.Type, i,
		).Scan(&exerciseID); err != nil {
			return fmt.Errorf("insert exercise %d: %w", i, err)
		}

		if _, err := insertSets(ctx, q, exerciseID, exercise.Sets); err != nil {
			return err
		}
	}
	return nil
}

func insertSets(ctx context.Context, q querier, exerciseID int, sets []NewSet) ([]Set, error) {
	inserted := make([]Set, 0, len(sets))
	for i, s := range sets {
		var setID int
		if err := q.QueryRow(
			ctx,
			`INSERT INTO sets (exercise_id, reps, weight, duration, distance, distance_unit)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
			exerciseID, s.Reps, s.Weight, s.Duration, s.Distance, s.DistanceUnit,
		).Scan(&setID); err != nil {
			return nil, fmt.Errorf("insert set %d of exercise %d: %w", i, exerciseID, err)
		}
		inserted = append(inserted, Set{
			ID:           setID,
			ExerciseID:   exerciseID,
			Reps:         s.Reps,
			Weight:       s.Weight,
			Duration:     s.Duration,
			Distance:     s.Distance,
			DistanceUnit: s.DistanceUnit,
		})
	}
	return inserted, nil
}

func getNested(ctx context.Context, q querier, userID string, id int) (*Workout, error) {
	if id <= 0 {
		return nil, ErrWorkoutNotFound
	}
	workouts, err := queryNested(ctx, q, userID, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, ErrWorkoutNotFound
	}
	return &workouts[0], nil
}

func queryNested(ctx context.Context, q querier, userID string, id int) ([]Workout, error) {
	rows, err := q.Query(ctx, nestedWorkoutsQuery, userID, id)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var (
			w             Workout
			exercisesJson []byte
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.CreatedAt, &exercisesJson); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJson, &w.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal workout %d exercises: %w", w.ID, err)
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}
