package lockfile

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"
)

// Mock Process
type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() { findProcessFunc, getpidFunc = oldFind, oldPid })

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func writeLock(t *testing.T, dir string, pid int) {
	t.Helper()
	content := fmt.Sprintf("%d|%s", pid, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(Path(dir), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{100: "aidant"})

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}

	// The owner itself is never reported as a competing holder.
	if _, ok := Check(dir); ok {
		t.Error("Check() reported our own lock")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release()")
	}
}

func TestAcquire_HeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{42: "aidant"})
	writeLock(t, dir, 42)

	holder, ok := Check(dir)
	if !ok || holder.PID != 42 {
		t.Fatalf("Check() = %+v, %v; want pid 42 held", holder, ok)
	}
	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquire_ReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		running map[int]string
	}{
		{"dead process", map[int]string{}},
		{"pid reused by another program", map[int]string{42: "bash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, 100, tt.running)
			writeLock(t, dir, 42)

			if _, ok := Check(dir); ok {
				t.Error("Check() reported a stale lock as held")
			}
			lock, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			holder, err := read(Path(dir))
			if err != nil || holder.PID != 100 {
				t.Errorf("lockfile = %+v, %v; want pid 100", holder, err)
			}
			lock.Release()
		})
	}
}

func TestRelease_DoesNotRemoveForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{})
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	writeLock(t, dir, 7)

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("Release() removed a lockfile owned by another process")
	}
}

func TestMalformedLockfile(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]string{})
	if err := os.WriteFile(Path(dir), []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, ok := Check(dir); ok {
		t.Error("Check() accepted a malformed lockfile")
	}
	if _, err := Acquire(dir); err != nil {
		t.Errorf("Acquire() over malformed lockfile error = %v", err)
	}
}
