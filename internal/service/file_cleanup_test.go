package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/gym-management-api/pkg/jobs"
)

type fakeEnqueuer struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeEnqueuer) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeDeleter) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestFileCleanupScheduleQueuesManagedFiles(t *testing.T) {
	queue := &fakeEnqueuer{}
	svc := NewFileCleanupService(&fakeDeleter{}, NewFileLocator("/uploads"), nil, zap.NewNop())
	svc.BindQueue(queue)

	svc.Schedule("/uploads/certificates/2024/01/a.pdf", "https://cdn.example.com/b.png", "", "/uploads/profile-photos/2024/02/c.png")

	require.Len(t, queue.jobs, 2)
	assert.Equal(t, FileCleanupJob, queue.jobs[0].Type)
	assert.Equal(t, "certificates/2024/01/a.pdf", queue.jobs[0].Payload)
	assert.Equal(t, "profile-photos/2024/02/c.png", queue.jobs[1].Payload)
}

func TestFileCleanupScheduleWithoutQueueIsNoop(t *testing.T) {
	svc := NewFileCleanupService(&fakeDeleter{}, NewFileLocator("/uploads"), nil, nil)
	assert.NotPanics(t, func() { svc.Schedule("/uploads/a.png") })

	var nilSvc *FileCleanupService
	assert.NotPanics(t, func() { nilSvc.Schedule("/uploads/a.png") })
}

func TestFileCleanupScheduleSurvivesQueueErrors(t *testing.T) {
	svc := NewFileCleanupService(&fakeDeleter{}, NewFileLocator("/uploads"), nil, nil)
	svc.BindQueue(&fakeEnqueuer{err: jobs.ErrQueueFull})
	assert.NotPanics(t, func() { svc.Schedule("/uploads/a.png") })
}

func TestFileCleanupHandle(t *testing.T) {
	deleter := &fakeDeleter{}
	svc := NewFileCleanupService(deleter, NewFileLocator("/uploads"), nil, nil)

	require.NoError(t, svc.Handle(context.Background(), jobs.Job{ID: "1", Payload: "equipment/2024/01/rack.png"}))
	assert.Equal(t, []string{"equipment/2024/01/rack.png"}, deleter.keys())

	assert.Error(t, svc.Handle(context.Background(), jobs.Job{ID: "2", Payload: 42}))
	assert.Error(t, svc.Handle(context.Background(), jobs.Job{ID: "3", Payload: ""}))

	deleter.err = errors.New("disk unavailable")
	err := svc.Handle(context.Background(), jobs.Job{ID: "4", Payload: "a.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk unavailable")
}

func TestFileCleanupRunsOnQueue(t *testing.T) {
	deleter := &fakeDeleter{}
	svc := NewFileCleanupService(deleter, NewFileLocator("/uploads"), nil, nil)
	queue := jobs.NewQueue(FileCleanupJob, svc.Handle, jobs.QueueConfig{Workers: 1, BufferSize: 4})
	svc.BindQueue(queue)

	queue.Start(context.Background())
	svc.Schedule("/uploads/certificates/2024/01/a.pdf")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	queue.Shutdown(ctx)
	assert.Equal(t, []string{"certificates/2024/01/a.pdf"}, deleter.keys())
}
