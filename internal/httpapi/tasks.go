package httpapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legalguard/regtech/internal/compliance"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
)

// BulkTask tracks one background batch analysis.
type BulkTask struct {
	ID          string              `json:"task_id"`
	Status      TaskStatus          `json:"status"`
	Priority    string              `json:"priority"`
	Total       int                 `json:"total"`
	Completed   int                 `json:"completed"`
	Reports     []compliance.Report `json:"reports,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// taskRegistry is the in-memory bulk task store. Tasks are transient; a
// restart forgets them, matching the engine's no-persistence contract for
// analysis artifacts.
type taskRegistry struct {
	mu    sync.RWMutex
	tasks map[string]*BulkTask
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: map[string]*BulkTask{}}
}

func (r *taskRegistry) create(priority string, total int) *BulkTask {
	t := &BulkTask{
		ID:        uuid.NewString(),
		Status:    TaskPending,
		Priority:  priority,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()
	return t
}

func (r *taskRegistry) setRunning(id string) {
	r.mu.Lock()
	if t, ok := r.tasks[id]; ok {
		t.Status = TaskRunning
	}
	r.mu.Unlock()
}

func (r *taskRegistry) complete(id string, reports []compliance.Report) {
	now := time.Now().UTC()
	r.mu.Lock()
	if t, ok := r.tasks[id]; ok {
		t.Status = TaskCompleted
		t.Completed = len(reports)
		t.Reports = reports
		t.CompletedAt = &now
	}
	r.mu.Unlock()
}

// get returns a copy so callers cannot race with task updates.
func (r *taskRegistry) get(id string) (BulkTask, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return BulkTask{}, false
	}
	return *t, true
}
