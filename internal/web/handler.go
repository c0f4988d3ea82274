package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/client"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/view"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	regionStats    = "stats"
	regionWorkouts = "workouts"

	maxFormBytes = 1 << 20
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=web_test

type workoutsAPI interface {
	Stats(ctx context.Context) (*client.StatsSnapshot, error)
	Workouts(ctx context.Context) ([]client.Workout, error)
	CreateWorkout(ctx context.Context, w client.NewWorkout) error
}

type pageData struct {
	Page      view.Page
	CSRFField template.HTML
}

// Handler serves the entry page. It keeps the last successful render of each
// page region, shown again when reloading that region fails.
type Handler struct {
	api            workoutsAPI
	submitter      *view.Submitter
	tmpl           *template.Template
	metricsManager *metrics.Manager
	surface        view.Surface
	now            func() time.Time

	mu       sync.Mutex
	rendered view.Rendered
}

func NewHandler(
	api workoutsAPI,
	metricsManager *metrics.Manager,
	surface view.Surface,
) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Handler{
		api:            api,
		submitter:      view.NewSubmitter(api),
		tmpl:           tmpl,
		metricsManager: metricsManager,
		surface:        surface,
		now:            time.Now,
	}, nil
}

// SetupRoutes registers the page routes. protect guards the form routes against CSRF,
// pass nil to skip it.
func (handler *Handler) SetupRoutes(router *mux.Router, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	router.Handle("/", protect(http.HandlerFunc(handler.HandlePage))).Methods("GET").Name("page")
	router.Handle("/", protect(http.HandlerFunc(handler.HandleSubmit))).Methods("POST").Name("submit")
	router.HandleFunc("/chart.png", handler.HandleChartPNG).Methods("GET").Name("chart-png")
}

func (handler *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "web.handler.page")
	defer span.End()

	query := r.URL.Query()
	form := view.FormValues{
		Date:     query.Get("date"),
		Exercise: query.Get("exercise"),
	}
	if strings.TrimSpace(form.Date) == "" {
		form.Date = view.TodayISO(handler.now())
	}

	handler.render(ctx, w, r, http.StatusOK, form, "")
}

func (handler *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "web.handler.submit")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Errorf("submit workout, parse form: %s", err)
		handler.metricsManager.CounterSubmissions.WithLabelValues(metrics.SubmissionInvalid).Inc()
		handler.render(ctx, w, r, http.StatusBadRequest, view.FormValues{}, "Body missing")
		return
	}

	form := view.FormValues{
		Date:     r.PostFormValue("date"),
		Exercise: r.PostFormValue("exercise"),
		Sets:     r.PostFormValue("sets"),
		Duration: r.PostFormValue("duration"),
	}

	result := handler.submitter.Submit(ctx, form)
	span.SetAttributes(attribute.String("outcome", string(result.Outcome)))
	handler.metricsManager.CounterSubmissions.WithLabelValues(string(result.Outcome)).Inc()

	if result.OK {
		q := url.Values{}
		q.Set("date", result.Form.Date)
		q.Set("exercise", result.Form.Exercise)
		for _, key := range []string{"w", "h"} {
			if v := r.URL.Query().Get(key); v != "" {
				q.Set(key, v)
			}
		}
		http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
		return
	}

	status := http.StatusUnprocessableEntity
	switch result.Outcome {
	case view.OutcomeRejected:
		status = http.StatusBadRequest
	case view.OutcomeTransport:
		status = http.StatusBadGateway
		log.Errorf("submit workout: %s", result.Alert)
	}

	handler.render(ctx, w, r, status, result.Form, result.Alert)
}

func (handler *Handler) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "web.handler.chart-png")
	defer span.End()

	snapshot, err := handler.api.Stats(ctx)
	if err != nil {
		span.RecordError(err)
		log.Errorf("chart png, get stats: %s", err)
		handler.metricsManager.CounterLoadFailures.WithLabelValues(regionStats).Inc()
		pkg.WriteResponse(w, pkg.ContentType.Text, "stats unavailable", http.StatusBadGateway)
		return
	}

	if len(snapshot.DailyVolumes) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	img, err := view.RenderChartPNG(snapshot.DailyVolumes, handler.surfaceFor(r))
	if err != nil {
		span.RecordError(err)
		log.Errorf("chart png: %s", err)
		pkg.WriteResponse(w, pkg.ContentType.Text, "render chart failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.PNG, img)
}

func (handler *Handler) render(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form view.FormValues,
	alert string,
) {
	statsResult, workoutsResult := handler.load(ctx, handler.surfaceFor(r))

	handler.mu.Lock()
	page, next := view.BuildPage(form, alert, statsResult, workoutsResult, handler.rendered)
	handler.rendered = next
	handler.mu.Unlock()

	var buf bytes.Buffer
	if err := handler.tmpl.ExecuteTemplate(&buf, "layout", pageData{
		Page:      page,
		CSRFField: csrf.TemplateField(r),
	}); err != nil {
		log.Errorf("render page: %s", err)
		pkg.WriteResponse(w, pkg.ContentType.Text, "render page failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), status)
}

// load fetches both page regions concurrently. A failing region does not cancel the other.
func (handler *Handler) load(ctx context.Context, surface view.Surface) (
	view.Result[view.StatsView],
	view.Result[[]view.WorkoutRow],
) {
	var (
		statsResult    view.Result[view.StatsView]
		workoutsResult view.Result[[]view.WorkoutRow]
		g              errgroup.Group
	)

	g.Go(func() error {
		snapshot, err := handler.api.Stats(ctx)
		if err != nil {
			handler.loadFailed(regionStats, err)
			statsResult = view.Failed[view.StatsView](err)
			return nil
		}
		statsResult = view.OK(view.RenderStats(snapshot, surface))
		return nil
	})

	g.Go(func() error {
		list, err := handler.api.Workouts(ctx)
		if err != nil {
			handler.loadFailed(regionWorkouts, err)
			workoutsResult = view.Failed[[]view.WorkoutRow](err)
			return nil
		}
		workoutsResult = view.OK(view.RenderWorkouts(list))
		return nil
	})

	_ = g.Wait()
	return statsResult, workoutsResult
}

func (handler *Handler) loadFailed(region string, err error) {
	log.Errorf("load %s: %s", region, err)
	handler.metricsManager.CounterLoadFailures.WithLabelValues(region).Inc()
}

// surfaceFor reads the chart size from the w and h query params, falling back to the configured size.
func (handler *Handler) surfaceFor(r *http.Request) view.Surface {
	surface := handler.surface
	query := r.URL.Query()
	if w, err := strconv.Atoi(query.Get("w")); err == nil && w > 0 {
		surface.Width = w
	}
	if h, err := strconv.Atoi(query.Get("h")); err == nil && h > 0 {
		surface.Height = h
	}
	return surface
}
