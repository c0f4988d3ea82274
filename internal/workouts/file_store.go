package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// FileStore keeps all workouts in a single JSON array file.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileStore(path string) (*FileStore, error) {
	if err := pkg.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("init store file: %w", err)
		}
		log.Debugf("workouts store file created: %s", path)
	}

	return &FileStore{
		path: path,
		now:  time.Now,
	}, nil
}

func (s *FileStore) All(ctx context.Context) (_ []Workout, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(list)))
	return list, nil
}

func (s *FileStore) Add(ctx context.Context, w Workout) (_ *Workout, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return nil, err
	}

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.now().UTC()
	}
	span.SetAttributes(attribute.String("workout.id", w.ID))

	list = append(list, w)
	if err := s.write(list); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *FileStore) read() ([]Workout, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var list []Workout
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	if list == nil {
		list = []Workout{}
	}
	return list, nil
}

// write replaces the store file through a temp file in the same dir.
func (s *FileStore) write(list []Workout) error {
	content, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
