package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/stats"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxBodyBytes = 1 << 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=api_test

type workoutStore interface {
	All(ctx context.Context) ([]workouts.Workout, error)
	Add(ctx context.Context, w workouts.Workout) (*workouts.Workout, error)
}

type statsService interface {
	Snapshot(ctx context.Context) (*stats.Snapshot, error)
	Invalidate()
}

type eventPublisher interface {
	WorkoutCreated(ctx context.Context, w workouts.Workout) error
}

type AddWorkoutResponse struct {
	OK bool `json:"ok"`
}

type Handler struct {
	store          workoutStore
	stats          statsService
	publisher      eventPublisher
	metricsManager *metrics.Manager
}

func NewHandler(
	store workoutStore,
	stats statsService,
	publisher eventPublisher,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		store:          store,
		stats:          stats,
		publisher:      publisher,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the /api routes. POST is rate limited when a limiter is given.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	postAllowedPerMin int,
) {
	apiRouter := mainRouter.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/workouts", handler.HandleList).Methods("GET").Name("list-workouts")
	apiRouter.HandleFunc("/stats", handler.HandleStats).Methods("GET").Name("stats")
	apiRouter.HandleFunc("/export", handler.HandleExport).Methods("GET").Name("export")

	var addHandler http.Handler = http.HandlerFunc(handler.HandleAdd)
	if rateLimiter != nil && postAllowedPerMin > 0 {
		addHandler = middleware.RateLimit(rateLimiter, "add-workout", postAllowedPerMin, handler.metricsManager)(addHandler)
	}
	apiRouter.Handle("/workouts", addHandler).Methods("POST").Name("add-workout")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	list, err := handler.store.All(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		pkg.WriteJSONError(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("workouts.count", len(list)))

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if !isJSONOrUnset(r.Header.Get("Content-Type")) {
		pkg.WriteJSONError(w, "content type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var newWorkout *workouts.Workout
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&newWorkout); err != nil || newWorkout == nil {
		log.Tracef("add workout, unmarshal json body: %v", err)
		pkg.WriteJSONError(w, "Body missing", http.StatusBadRequest)
		return
	}

	// identity and timestamps are owned by the store
	newWorkout.ID = ""
	newWorkout.CreatedAt = time.Time{}

	if err := workouts.Validate(*newWorkout); err != nil {
		handler.metricsManager.CounterWorkoutsRejected.Inc()
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.store.Add(ctx, *newWorkout)
	if err != nil {
		log.Errorf("failed to add workout [%s] [%s]: %s", newWorkout.Date, newWorkout.Exercise, err)
		pkg.WriteJSONError(w, "failed to add workout", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.String("workout.id", added.ID))

	handler.stats.Invalidate()
	handler.metricsManager.CounterWorkoutsAdded.Inc()

	if err := handler.publisher.WorkoutCreated(ctx, *added); err != nil {
		// the workout is stored, event delivery is best effort
		log.Errorf("publish workout created [%s]: %s", added.ID, err)
	}

	log.Debugf("new workout added: %s [%s] %s", added.ID, added.Date, added.Exercise)
	pkg.WriteJSON(w, AddWorkoutResponse{OK: true}, http.StatusCreated)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	snapshot, err := handler.stats.Snapshot(ctx)
	if err != nil {
		log.Errorf("compute stats: %s", err)
		pkg.WriteJSONError(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, snapshot, http.StatusOK)
}

var exportHeader = []string{"date", "exercise", "reps", "weight", "volume"}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.export")
	defer span.End()

	list, err := handler.store.All(ctx)
	if err != nil {
		log.Errorf("export workouts: %s", err)
		pkg.WriteJSONError(w, "failed to export workouts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", pkg.ContentType.CSV)
	w.Header().Set("Content-Disposition", `attachment; filename="workouts.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := writeExport(w, list); err != nil {
		log.Errorf("write export csv: %s", err)
	}
}

// writeExport writes one row per set, cardio entries get a row with empty numbers.
func writeExport(out io.Writer, list []workouts.Workout) error {
	csvWriter := csv.NewWriter(out)
	if err := csvWriter.Write(exportHeader); err != nil {
		return err
	}
	for _, wo := range list {
		if !wo.HasSets() {
			if err := csvWriter.Write([]string{wo.Date, wo.Exercise, "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, s := range wo.Sets {
			if err := csvWriter.Write([]string{
				wo.Date,
				wo.Exercise,
				strconv.Itoa(s.Reps),
				formatNumber(s.Weight),
				formatNumber(s.Volume()),
			}); err != nil {
				return err
			}
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isJSONOrUnset(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == pkg.ContentType.JSON
}
