package checkins

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SetTracker drives set-by-set logging for one active check-in. It owns
// the per-exercise bookkeeping the backend does not: 1-based set indices,
// set start times and the rest measured since the previous completion.
//
// Indices and rest times are computed on this device only. Two devices
// logging into the same check-in can produce colliding indices; the
// backend accepts whatever it is sent.
type SetTracker struct {
	api       Api
	checkInID uuid.UUID

	mutex          sync.Mutex
	setStarts      map[uuid.UUID]time.Time
	lastCompletion map[uuid.UUID]time.Time
	setCounts      map[uuid.UUID]int

	NowFunc func() time.Time
}

func NewSetTracker(api Api, checkInID uuid.UUID) *SetTracker {
	return &SetTracker{
		api:            api,
		checkInID:      checkInID,
		setStarts:      map[uuid.UUID]time.Time{},
		lastCompletion: map[uuid.UUID]time.Time{},
		setCounts:      map[uuid.UUID]int{},
		NowFunc:        time.Now,
	}
}

// BeginSet marks the start of a set for the exercise. Calling it again
// before CompleteSet restarts the clock.
func (t *SetTracker) BeginSet(exerciseID uuid.UUID) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.setStarts[exerciseID] = t.NowFunc()
}

// CompleteSet submits the finished set. The rest before the set is the
// time from the previous completed set of the same exercise to this
// set's start; for the first set there is no reference, so rest is zero.
// Submissions are serialized, two concurrent completions cannot claim
// the same index.
func (t *SetTracker) CompleteSet(ctx context.Context, exerciseID uuid.UUID, reps int, weight float64) (*ExerciseSet, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	endedAt := t.NowFunc()
	startedAt, ok := t.setStarts[exerciseID]
	if !ok {
		startedAt = endedAt
	}

	reference, ok := t.lastCompletion[exerciseID]
	if !ok {
		reference = startedAt
	}
	restSeconds := int(startedAt.Sub(reference).Seconds())
	if restSeconds < 0 {
		restSeconds = 0
	}

	set, err := t.api.AddSet(ctx, AddSetParams{
		CheckInID:            t.checkInID,
		ExerciseID:           exerciseID,
		SetIndex:             t.setCounts[exerciseID] + 1,
		Reps:                 reps,
		Weight:               weight,
		StartedAt:            startedAt,
		EndedAt:              endedAt,
		RestSecondsBeforeSet: restSeconds,
	})
	if err != nil {
		return nil, err
	}

	t.setCounts[exerciseID]++
	t.lastCompletion[exerciseID] = endedAt
	delete(t.setStarts, exerciseID)
	return set, nil
}
