package tasks

import (
	"sync"
	"time"

	"padelwatch/models"
)

// taskStore holds task state in memory. Tasks do not survive a process
// restart; callers that need durability re-run the search. All access
// goes through the mutex, and terminal tasks are never mutated again.
type taskStore struct {
	mu    sync.RWMutex
	tasks map[string]*models.SearchTask
}

func newTaskStore() *taskStore {
	return &taskStore{tasks: make(map[string]*models.SearchTask)}
}

func (st *taskStore) put(task *models.SearchTask) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.tasks[task.ID] = task
}

// get returns a snapshot copy so callers never observe a half-applied
// update and cannot mutate live state.
func (st *taskStore) get(id string) (models.SearchTask, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	task, ok := st.tasks[id]
	if !ok {
		return models.SearchTask{}, false
	}
	return *task, true
}

// update applies fn under the lock. It refuses to touch tasks already
// in a terminal state, which enforces terminal immutability no matter
// which goroutine finishes first.
func (st *taskStore) update(id string, fn func(*models.SearchTask)) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	task, ok := st.tasks[id]
	if !ok || task.Terminal() {
		return false
	}
	fn(task)
	return true
}

// pruneOlderThan drops terminal tasks whose completion is older than
// the cutoff. Live tasks are never pruned.
func (st *taskStore) pruneOlderThan(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	pruned := 0
	for id, task := range st.tasks {
		if !task.Terminal() {
			continue
		}
		if task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			delete(st.tasks, id)
			pruned++
		}
	}
	return pruned
}
