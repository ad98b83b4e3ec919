package exerciselib

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"
	"github.com/pulsefit/core/internal/workouts"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	libraryTable = "exercise_library"

	oneHour            = 60 * 60
	libraryCacheExpire = oneHour * 6
)

// HttpApi is the remote exercise catalog. The catalog changes rarely, so
// fetched libraries are cached per owner.
type HttpApi struct {
	client *backend.Client
	cache  *freecache.Cache
}

func NewHttpApi(client *backend.Client) *HttpApi {
	megabyte := 1024 * 1024
	return &HttpApi{
		client: client,
		cache:  freecache.NewCache(megabyte),
	}
}

func (api *HttpApi) FetchLibrary(ctx context.Context, ownerID uuid.UUID) (_ []workouts.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exerciselib.fetchLibrary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(fmt.Sprintf("library::%s", ownerID))
	if cachedBytes, err := api.cache.Get(cacheKey); err == nil {
		var cached []workouts.Exercise
		if err = json.Unmarshal(cachedBytes, &cached); err == nil {
			log.Tracef("exerciselib: library for %s served from cache", ownerID)
			return cached, nil
		}
		log.Errorf("exerciselib: unmarshal cached library for %s: %s", ownerID, err)
	}

	var rows []libraryRow
	if err := api.client.From(libraryTable).
		Select().
		Eq("owner_id", ownerID.String()).
		Order("name", true).
		Execute(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fetch exercise library: %w", err)
	}

	library := make([]workouts.Exercise, 0, len(rows))
	for _, r := range rows {
		library = append(library, r.toDomain())
	}

	if libraryBytes, err := json.Marshal(library); err == nil {
		if err = api.cache.Set(cacheKey, libraryBytes, libraryCacheExpire); err != nil {
			log.Errorf("exerciselib: cache library for %s: %s", ownerID, err)
		}
	}

	return library, nil
}

type libraryRow struct {
	ID           uuid.UUID             `json:"id"`
	OwnerID      uuid.UUID             `json:"owner_id"`
	Name         string                `json:"name"`
	Category     *string               `json:"category"`
	TrackingType workouts.TrackingType `json:"tracking_type"`
	CreatedAt    string                `json:"created_at"`
}

func (r libraryRow) toDomain() workouts.Exercise {
	category := ""
	if r.Category != nil {
		category = *r.Category
	}
	trackingType := r.TrackingType
	if !trackingType.Valid() {
		trackingType = workouts.TrackingStrength
	}
	ownerID := r.OwnerID
	return workouts.Exercise{
		ID:             r.ID,
		LibraryOwnerID: &ownerID,
		Name:           r.Name,
		Category:       category,
		TrackingType:   trackingType,
	}
}
