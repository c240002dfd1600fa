//go:build unix

package credential

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/openwrt/webauthn-helper/internal/apperr"
)

// lockAcquireTimeout bounds how long a caller waits for the exclusive
// lock before giving up, per spec.md §5 ("implementations may add one
// >= 5s to protect against stuck lock holders").
const lockAcquireTimeout = 5 * time.Second

const lockPollInterval = 50 * time.Millisecond

// fileLock holds an exclusive advisory lock on an *os.File for the
// duration of a read-modify-write window. flock has no native
// timeout, so acquireExclusiveLock polls with LOCK_NB rather than blocking
// indefinitely.
type fileLock struct {
	file *os.File
}

func acquireExclusiveLock(path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, apperr.StorageFailed("open credential store file", err)
	}

	deadline := time.Now().Add(lockAcquireTimeout)
	for {
		err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &fileLock{file: file}, nil
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, apperr.StorageFailed("lock acquisition timed out", err)
		}
		time.Sleep(lockPollInterval)
	}
}

func (l *fileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	if err != nil {
		return apperr.StorageFailed("release credential store lock", err)
	}
	if closeErr != nil {
		return apperr.StorageFailed("close credential store file", closeErr)
	}
	return nil
}
