package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/checkins"
	"github.com/pulsefit/core/internal/profiles"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type checkInsRepo interface {
	FetchProgress(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]checkins.ProgressSnapshot, error)
	SetsForExercise(ctx context.Context, exerciseID uuid.UUID) ([]checkins.ExerciseSet, error)
}

// Analyzer answers dashboard questions from check-in history.
type Analyzer struct {
	repo checkInsRepo
}

func NewAnalyzer(repo checkInsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// Streak is the user's current consecutive-day check-in streak, looking
// back up to a year.
func (a *Analyzer) Streak(ctx context.Context, userID uuid.UUID, today time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshots, err := a.repo.FetchProgress(ctx, userID, today.AddDate(-1, 0, 0), today)
	if err != nil {
		return 0, fmt.Errorf("fetch progress: %w", err)
	}

	days := make(map[time.Time]bool, len(snapshots))
	for _, s := range snapshots {
		if s.WorkoutsCompleted > 0 {
			days[checkins.DayStart(s.Day)] = true
		}
	}

	streak := streakFrom(days, today)
	span.SetAttributes(attribute.Int("streak.days", streak))
	return streak, nil
}

// SuggestNextSet recommends the next working set for the exercise based
// on its full set history.
func (a *Analyzer) SuggestNextSet(
	ctx context.Context,
	exerciseID uuid.UUID,
	method profiles.ProgressionMethod,
) (_ Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.suggestNextSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sets, err := a.repo.SetsForExercise(ctx, exerciseID)
	if err != nil {
		return Suggestion{}, fmt.Errorf("fetch sets for exercise: %w", err)
	}

	suggestion := Suggest(sets, method)
	span.SetAttributes(attribute.Float64("suggestion.weight", suggestion.Weight))
	return suggestion, nil
}

// ExerciseVolume is the lifetime training volume for one exercise.
func (a *Analyzer) ExerciseVolume(ctx context.Context, exerciseID uuid.UUID) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.exerciseVolume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sets, err := a.repo.SetsForExercise(ctx, exerciseID)
	if err != nil {
		return 0, fmt.Errorf("fetch sets for exercise: %w", err)
	}
	return TrainingVolume(sets), nil
}
