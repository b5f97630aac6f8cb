package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"cleanarr/internal/services"
)

// runLock guards against two passes mutating the asset store at once.
type runLock struct {
	path string
	lock *flock.Flock
}

func acquireLock(path string) (*runLock, error) {
	if path == "" {
		return &runLock{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reconcile", "lock", "create lock directory", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLocked, "reconcile", "lock", fmt.Sprintf("acquire %s", path), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "reconcile", "lock", fmt.Sprintf("%s is held by another process", path), nil)
	}
	return &runLock{path: path, lock: lock}, nil
}

func (l *runLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
