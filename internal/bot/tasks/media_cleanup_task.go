package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edgard/halalbot/internal/conversation"
)

// newMediaCleanupTask creates the task that removes image artifacts older
// than media.max_age. The pipeline deletes its own files, so anything found
// here was left behind by a crash.
func newMediaCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", MediaCleanupTask)

	return func(ctx context.Context) error {
		dir := deps.Config.Media.Dir
		cutoff := time.Now().Add(-deps.Config.Media.MaxAge)

		matches, err := filepath.Glob(filepath.Join(dir, conversation.TempFilePattern))
		if err != nil {
			return fmt.Errorf("media cleanup glob failed: %w", err)
		}

		removed := 0
		var errs []error
		for _, path := range matches {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			info, err := os.Stat(path)
			if err != nil {
				if !os.IsNotExist(err) {
					errs = append(errs, err)
				}
				continue
			}
			if info.IsDir() || info.ModTime().After(cutoff) {
				continue
			}

			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, err)
				continue
			}
			removed++
		}

		if removed > 0 {
			log.InfoContext(ctx, "Removed stale media files", "count", removed, "dir", dir)
		} else {
			log.DebugContext(ctx, "No stale media files found", "dir", dir)
		}

		if len(errs) > 0 {
			return fmt.Errorf("media cleanup failed for %d files: %w", len(errs), errors.Join(errs...))
		}
		return nil
	}
}
