package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS public.workout
(
    seq        BIGSERIAL PRIMARY KEY,
    id         UUID        NOT NULL UNIQUE,
    date       DATE        NOT NULL,
    exercise   VARCHAR     NOT NULL,
    sets       JSONB,
    duration   BIGINT,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_workout_created_at ON public.workout (created_at, seq);

-- tables created with an INTEGER duration
ALTER TABLE public.workout ALTER COLUMN duration TYPE BIGINT;
`

// PgRepo is the postgres backed Store.
type PgRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPgRepo(db *pgxpool.Pool) *PgRepo {
	return &PgRepo{
		db:  db,
		now: time.Now,
	}
}

func (r *PgRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("create workout schema: %w", err)
	}
	return nil
}

func (r *PgRepo) Add(ctx context.Context, w Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = r.now().UTC()
	}
	span.SetAttributes(attribute.String("workout.id", w.ID))

	var setsJson []byte
	if w.HasSets() {
		setsJson, err = json.Marshal(w.Sets)
		if err != nil {
			return nil, fmt.Errorf("marshal sets: %w", err)
		}
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout
				(id, date, exercise, sets, duration, created_at)
				VALUES ($1, $2, $3, $4, $5, $6);`,
		w.ID, w.Date, w.Exercise, setsJson, w.Duration.Ptr(), w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *PgRepo) All(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, exercise, sets, duration, created_at
			FROM workout
			ORDER BY created_at, seq;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Workout{}
	for rows.Next() {
		var (
			w        Workout
			date     time.Time
			setsJson []byte
			duration *int
		)
		if err := rows.Scan(&w.ID, &date, &w.Exercise, &setsJson, &duration, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Date = date.Format(DateLayout)
		w.Duration = pkg.OptionalFromPtr(duration)
		if len(setsJson) > 0 {
			if err := json.Unmarshal(setsJson, &w.Sets); err != nil {
				return nil, fmt.Errorf("unmarshal sets of %s: %w", w.ID, err)
			}
		}
		list = append(list, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("workouts.count", len(list)))
	return list, nil
}
