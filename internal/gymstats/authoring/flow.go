// Package authoring holds the workout authoring flow of a client:
// choose a starting point, edit the form, then submit or cancel.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/gymstats/favorites"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/gymstats/views"
	"github.com/2beens/fitlog/internal/gymstats/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=flow_mocks_test.go -package=authoring_test

type fitlogAPI interface {
	CreateWorkout(ctx context.Context, in validation.WorkoutInput) (*workouts.Workout, error)
	SaveWorkout(ctx context.Context, in validation.SavedWorkoutInput) (*favorites.SavedWorkout, error)
	SaveExercise(ctx context.Context, in validation.SavedExerciseInput) (*favorites.SavedExercise, error)
}

type State string

const (
	StateChoose    State = "choose"
	StateForm      State = "form"
	StateSubmitted State = "submitted"
	StateCancelled State = "cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoSuchExercise    = errors.New("no such exercise")
	ErrAlreadyFavorited  = errors.New("a saved workout with this title already exists")
)

// DraftSet values are in the display unit chosen when the flow started.
type DraftSet struct {
	Reps         *int
	Weight       *float64
	Duration     *float64
	Distance     *float64
	DistanceUnit *string
}

type DraftExercise struct {
	Name      string
	Type      string
	Sets      []DraftSet
	Expanded  bool
	Favorited bool
}

type Flow struct {
	mutex     sync.Mutex
	api       fitlogAPI
	state     State
	unit      views.Unit
	title     string
	createdAt time.Time
	exercises []DraftExercise
}

func NewFlow(api fitlogAPI) *Flow {
	return &Flow{
		api:   api,
		state: StateChoose,
		unit:  views.UnitKg,
	}
}

func (f *Flow) State() State {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.state
}

func (f *Flow) Unit() views.Unit {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.unit
}

func (f *Flow) Title() string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.title
}

// Exercises returns a copy of the exercises in the form.
func (f *Flow) Exercises() []DraftExercise {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	exercises := make([]DraftExercise, 0, len(f.exercises))
	for _, e := range f.exercises {
		e.Sets = append([]DraftSet(nil), e.Sets...)
		exercises = append(exercises, e)
	}
	return exercises
}

func (f *Flow) StartBlank(unit views.Unit) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateChoose); err != nil {
		return err
	}
	f.unit = unit
	f.exercises = make([]DraftExercise, 0)
	f.state = StateForm
	return nil
}

// LoadTemplate fills the form from a saved workout, converting stored kg into unit.
func (f *Flow) LoadTemplate(saved favorites.SavedWorkout, unit views.Unit) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateChoose); err != nil {
		return err
	}

	f.unit = unit
	f.title = saved.Title
	f.exercises = make([]DraftExercise, 0, len(saved.Exercises))
	for _, te := range saved.Exercises {
		sets := make([]DraftSet, 0, len(te.Sets))
		for _, ts := range te.Sets {
			sets = append(sets, DraftSet{
				Reps:         ts.Reps,
				Weight:       convertWeight(ts.Weight, func(kg float64) float64 { return views.Round1(views.ToDisplay(kg, unit)) }),
				Duration:     ts.Duration,
				Distance:     ts.Distance,
				DistanceUnit: ts.DistanceUnit,
			})
		}
		f.exercises = append(f.exercises, DraftExercise{Name: te.Name, Type: te.Type, Sets: sets})
	}
	f.state = StateForm
	return nil
}

func (f *Flow) SetTitle(title string) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateForm); err != nil {
		return err
	}
	f.title = title
	return nil
}

// SetDate sets the workout date, a zero time lets the server use the current time.
func (f *Flow) SetDate(date time.Time) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateForm); err != nil {
		return err
	}
	f.createdAt = date
	return nil
}

// AddExercise appends an expanded exercise and returns its index.
func (f *Flow) AddExercise(exercise DraftExercise) (int, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateForm); err != nil {
		return -1, err
	}
	exercise.Expanded = true
	exercise.Favorited = false
	f.exercises = append(f.exercises, exercise)
	return len(f.exercises) - 1, nil
}

func (f *Flow) UpdateExercise(i int, exercise DraftExercise) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expectExercise(i); err != nil {
		return err
	}
	exercise.Expanded = f.exercises[i].Expanded
	f.exercises[i] = exercise
	return nil
}

func (f *Flow) RemoveExercise(i int) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expectExercise(i); err != nil {
		return err
	}
	f.exercises = append(f.exercises[:i], f.exercises[i+1:]...)
	return nil
}

func (f *Flow) ToggleExpanded(i int) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expectExercise(i); err != nil {
		return err
	}
	f.exercises[i].Expanded = !f.exercises[i].Expanded
	return nil
}

// FavoriteExercise saves the i-th exercise as a template. The form itself is not changed
// apart from marking the exercise as favorited.
func (f *Flow) FavoriteExercise(ctx context.Context, i int) (*favorites.SavedExercise, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expectExercise(i); err != nil {
		return nil, err
	}

	saved, err := f.api.SaveExercise(ctx, validation.SavedExerciseInput{
		Name: f.exercises[i].Name,
		Type: f.exercises[i].Type,
		Sets: f.toSetInputs(f.exercises[i].Sets),
	})
	if err != nil {
		return nil, err
	}
	f.exercises[i].Favorited = true
	return saved, nil
}

// SaveAsFavorite stores the whole form as a saved workout. existing is the list of
// saved workouts the client knows about, colliding titles are rejected before calling the API.
func (f *Flow) SaveAsFavorite(ctx context.Context, existing []favorites.SavedWorkout) (*favorites.SavedWorkout, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateForm); err != nil {
		return nil, err
	}
	if views.IsFavoritedTitle(f.title, existing) {
		return nil, ErrAlreadyFavorited
	}

	return f.api.SaveWorkout(ctx, validation.SavedWorkoutInput{
		Title:     strings.TrimSpace(f.title),
		Exercises: f.toExerciseInputs(),
	})
}

// Submit creates the workout, converting weights back to kg. On failure the form
// is kept so it can be fixed and submitted again.
func (f *Flow) Submit(ctx context.Context) (*workouts.Workout, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if err := f.expect(StateForm); err != nil {
		return nil, err
	}

	in := validation.WorkoutInput{
		Exercises: f.toExerciseInputs(),
	}
	if title := strings.TrimSpace(f.title); title != "" {
		in.Title = &title
	}
	if !f.createdAt.IsZero() {
		in.CreatedAt = &validation.FlexTime{Time: f.createdAt}
	}

	created, err := f.api.CreateWorkout(ctx, in)
	if err != nil {
		log.Debugf("submit workout: %s", err)
		return nil, err
	}

	f.reset()
	f.state = StateSubmitted
	return created, nil
}

// Cancel discards everything held by the flow.
func (f *Flow) Cancel() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.state != StateChoose && f.state != StateForm {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, f.state)
	}
	f.reset()
	f.state = StateCancelled
	return nil
}

func (f *Flow) reset() {
	f.title = ""
	f.createdAt = time.Time{}
	f.exercises = nil
}

func (f *Flow) expect(state State) error {
	if f.state != state {
		return fmt.Errorf("%w: in %s, expected %s", ErrInvalidTransition, f.state, state)
	}
	return nil
}

func (f *Flow) expectExercise(i int) error {
	if err := f.expect(StateForm); err != nil {
		return err
	}
	if i < 0 || i >= len(f.exercises) {
		return fmt.Errorf("%w: %d", ErrNoSuchExercise, i)
	}
	return nil
}

func (f *Flow) toExerciseInputs() []validation.ExerciseInput {
	exercises := make([]validation.ExerciseInput, 0, len(f.exercises))
	for _, e := range f.exercises {
		exercises = append(exercises, validation.ExerciseInput{
			Name: e.Name,
			Type: e.Type,
			Sets: f.toSetInputs(e.Sets),
		})
	}
	return exercises
}

func (f *Flow) toSetInputs(draft []DraftSet) []validation.SetInput {
	unit := f.unit
	sets := make([]validation.SetInput, 0, len(draft))
	for _, s := range draft {
		sets = append(sets, validation.SetInput{
			Reps:         s.Reps,
			Weight:       convertWeight(s.Weight, func(v float64) float64 { return views.FromDisplay(v, unit) }),
			Duration:     s.Duration,
			Distance:     s.Distance,
			DistanceUnit: s.DistanceUnit,
		})
	}
	return sets
}

func convertWeight(w *float64, convert func(float64) float64) *float64 {
	if w == nil {
		return nil
	}
	v := convert(*w)
	return &v
}
