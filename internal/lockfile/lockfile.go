// Package lockfile marks a running interactive session so that destructive
// commands (restore, init --force) can refuse to run underneath it.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/aidant/internal/constants"
)

const Name = "aidant.lock"

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live aidant process holds the lock.
var ErrLocked = errors.New("une autre session aidant est en cours")

// Lock is a held lockfile. Release removes it.
type Lock struct {
	path string
	pid  int
}

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID       int
	StartedAt time.Time
}

// Path returns the lockfile path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, Name)
}

// Acquire writes a lockfile in dir. A lockfile left by a dead process is replaced.
func Acquire(dir string) (*Lock, error) {
	if holder, ok := Check(dir); ok {
		return nil, fmt.Errorf("%w (pid %d depuis %s)", ErrLocked, holder.PID, holder.StartedAt.Format("02/01 15:04"))
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, time.Now().Format(time.RFC3339))
	path := Path(dir)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Check reports whether a live aidant process other than the caller holds the lock in dir.
func Check(dir string) (Holder, bool) {
	holder, err := read(Path(dir))
	if err != nil {
		return Holder{}, false
	}
	if holder.PID == getpidFunc() {
		return Holder{}, false
	}

	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return Holder{}, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return Holder{}, false
	}
	return holder, true
}

func read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Holder{}, errors.New("invalid timestamp in lockfile")
	}
	return Holder{PID: pid, StartedAt: started}, nil
}
