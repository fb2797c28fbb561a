package mapping

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockTimeout bounds how long Open waits for another weaseltree process.
const lockTimeout = 10 * time.Second

// LockPath returns the lock file guarding the mapping file at path.
// The lock lives in the local temp dir rather than beside the mapping file
// because flock is unreliable on the /mnt drvfs mounts.
func LockPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "weaseltree-"+hex.EncodeToString(sum[:6])+".lock")
}

// Open loads the store while holding an exclusive lock. Call the returned
// unlock func after Save (or when done without saving).
func Open(ctx context.Context, path string) (*Store, func(), error) {
	fl := flock.New(LockPath(path))

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil && ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	if err != nil || !locked {
		return nil, nil, fmt.Errorf("mapping file %s is locked by another weaseltree process", path)
	}

	unlock := func() { _ = fl.Unlock() }

	s, err := Load(path)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return s, unlock, nil
}
