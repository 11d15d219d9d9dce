//go:build integration_test

package test

import (
	"context"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/client"
	"github.com/2beens/fitlog/internal/gymstats/authoring"
	"github.com/2beens/fitlog/internal/gymstats/validation"
	"github.com/2beens/fitlog/internal/gymstats/views"
)

func (s *IntegrationTestSuite) TestFavorites_SavedWorkouts() {
	ctx := context.Background()
	c, _ := s.signedInClient(ctx)

	saved, err := c.SaveWorkout(ctx, validation.SavedWorkoutInput{
		Title: "Push Day",
		Exercises: []validation.ExerciseInput{{
			Name: "Bench press",
			Type: "weights",
			Sets: []validation.SetInput{{Reps: intPtr(5), Weight: floatPtr(100)}},
		}},
	})
	s.Require().NoError(err)
	s.Equal("Push Day", saved.Title)
	s.Require().Len(saved.Exercises, 1)
	s.Equal(100.0, *saved.Exercises[0].Sets[0].Weight)

	_, err = c.SaveWorkout(ctx, validation.SavedWorkoutInput{
		Title:     "push day",
		Exercises: []validation.ExerciseInput{{Name: "Dips", Type: "bodyweight", Sets: []validation.SetInput{}}},
	})
	s.True(client.HasCode(err, apierr.CodeConflict))

	list, err := c.ListSavedWorkouts(ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(c.DeleteSavedWorkout(ctx, "PUSH DAY"))
	err = c.DeleteSavedWorkout(ctx, "Push Day")
	s.True(client.HasCode(err, apierr.CodeNotFound))

	_, err = c.SaveWorkout(ctx, validation.SavedWorkoutInput{
		Title:     "Push/Pull",
		Exercises: []validation.ExerciseInput{{Name: "Rows", Type: "weights", Sets: []validation.SetInput{}}},
	})
	s.Require().NoError(err)
	s.Require().NoError(c.DeleteSavedWorkout(ctx, "push/pull"))

	list, err = c.ListSavedWorkouts(ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *IntegrationTestSuite) TestFavorites_SavedExercises() {
	ctx := context.Background()
	c, _ := s.signedInClient(ctx)
	other, _ := s.signedInClient(ctx)

	saved, err := c.SaveExercise(ctx, validation.SavedExerciseInput{
		Name: "Plank",
		Type: "bodyweight",
		Sets: []validation.SetInput{{Duration: floatPtr(60)}},
	})
	s.Require().NoError(err)

	err = other.DeleteSavedExercise(ctx, saved.ID)
	s.True(client.HasCode(err, apierr.CodeNotFound))

	list, err := c.ListSavedExercises(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Plank", list[0].Name)

	s.Require().NoError(c.DeleteSavedExercise(ctx, saved.ID))
	list, err = c.ListSavedExercises(ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *IntegrationTestSuite) TestAuthoring_TemplateToWorkout() {
	ctx := context.Background()
	c, _ := s.signedInClient(ctx)

	template, err := c.SaveWorkout(ctx, validation.SavedWorkoutInput{
		Title: "Heavy Bench",
		Exercises: []validation.ExerciseInput{{
			Name: "Bench press",
			Type: "weights",
			Sets: []validation.SetInput{{Reps: intPtr(3), Weight: floatPtr(100)}},
		}},
	})
	s.Require().NoError(err)

	flow := authoring.NewFlow(c)
	s.Require().NoError(flow.LoadTemplate(*template, views.UnitLb))
	s.Equal(authoring.StateForm, flow.State())
	s.Equal(220.5, *flow.Exercises()[0].Sets[0].Weight)

	idx, err := flow.AddExercise(authoring.DraftExercise{
		Name: "Pull ups",
		Type: "bodyweight",
		Sets: []authoring.DraftSet{{Reps: intPtr(8)}},
	})
	s.Require().NoError(err)

	favorite, err := flow.FavoriteExercise(ctx, idx)
	s.Require().NoError(err)
	s.Equal("Pull ups", favorite.Name)
	s.True(flow.Exercises()[idx].Favorited)

	saved, err := c.ListSavedWorkouts(ctx)
	s.Require().NoError(err)
	_, err = flow.SaveAsFavorite(ctx, saved)
	s.ErrorIs(err, authoring.ErrAlreadyFavorited)

	created, err := flow.Submit(ctx)
	s.Require().NoError(err)
	s.Equal(authoring.StateSubmitted, flow.State())
	s.Equal("Heavy Bench", *created.Title)
	s.Require().Len(created.Exercises, 2)
	s.InDelta(100.0, *created.Exercises[0].Sets[0].Weight, 0.05)
	s.Equal(8, *created.Exercises[1].Sets[0].Reps)

	exercises, err := c.ListSavedExercises(ctx)
	s.Require().NoError(err)
	s.Len(exercises, 1)
}
