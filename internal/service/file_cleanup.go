package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/pkg/jobs"
)

// FileCleanupJob is the queue name and job type for orphaned file deletion.
const FileCleanupJob = "file-cleanup"

type fileDeleter interface {
	Delete(ctx context.Context, key string) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// FileCleanupService deletes stored files that no record references any more.
// Deletion runs on the background queue so requests never wait for storage.
type FileCleanupService struct {
	store   fileDeleter
	locator *FileLocator
	queue   jobEnqueuer
	metrics *MetricsService
	logger  *zap.Logger
}

// NewFileCleanupService constructs a FileCleanupService. BindQueue must be
// called before Schedule has any effect.
func NewFileCleanupService(store fileDeleter, locator *FileLocator, metrics *MetricsService, logger *zap.Logger) *FileCleanupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileCleanupService{store: store, locator: locator, metrics: metrics, logger: logger}
}

// BindQueue attaches the queue that runs Handle.
func (s *FileCleanupService) BindQueue(queue jobEnqueuer) {
	s.queue = queue
}

// Schedule queues deletion of every managed file among refs. References
// outside the upload prefix (external URLs) are ignored.
func (s *FileCleanupService) Schedule(refs ...string) {
	if s == nil || s.queue == nil {
		return
	}
	for _, ref := range refs {
		key, ok := s.locator.Key(ref)
		if !ok {
			continue
		}
		if err := s.queue.Enqueue(jobs.Job{Type: FileCleanupJob, Payload: key}); err != nil {
			level := s.logger.Warn
			if errors.Is(err, jobs.ErrQueueFull) {
				level = s.logger.Error
			}
			level("failed to queue file cleanup", zap.String("key", key), zap.Error(err))
		}
	}
}

// Handle is the queue handler deleting one stored file.
func (s *FileCleanupService) Handle(ctx context.Context, job jobs.Job) error {
	key, ok := job.Payload.(string)
	if !ok || key == "" {
		return fmt.Errorf("file cleanup: unexpected payload %T", job.Payload)
	}
	err := s.store.Delete(ctx, key)
	s.metrics.RecordFileCleanup(err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.logger.Info("orphaned file deleted", zap.String("key", key), zap.String("job_id", job.ID))
	return nil
}
