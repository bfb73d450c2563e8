// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// StateDirName is the hidden directory under the work directory that holds
// the run lock.
const StateDirName = ".deed-raster"

const lockFile = "run.lock"

// ErrLocked is returned by AcquireLock when another run owns the work directory.
var ErrLocked = errors.New("another run is already using this work directory")

// RunLock is an advisory lock over a work directory's workspaces.
type RunLock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the run lock for workDir without blocking.
func AcquireLock(workDir string) (*RunLock, error) {
	dir := filepath.Join(workDir, StateDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, lockFile)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, path)
	}
	return &RunLock{path: path, lock: fl}, nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string { return l.path }

// Release drops the lock.
func (l *RunLock) Release() error {
	return l.lock.Unlock()
}
