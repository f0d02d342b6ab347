package task

import (
	"context"

	"github.com/google/uuid"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskQueueReader provides read-only access to the task channel
// allowing workers to consume tasks without the ability to enqueue.
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}

// TaskQueueWriter provides write access to the task queue.
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing.
	// Returns an error if the queue is full or closed.
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}

// FuncTask adapts a function to the Task interface.
type FuncTask struct {
	TaskID   uuid.UUID
	TaskType string
	Fn       func(ctx context.Context) error
}

var _ Task = (*FuncTask)(nil)

// NewFuncTask creates a FuncTask with a fresh ID.
func NewFuncTask(taskType string, fn func(ctx context.Context) error) *FuncTask {
	return &FuncTask{TaskID: uuid.New(), TaskType: taskType, Fn: fn}
}

// ID implements Task.
func (t *FuncTask) ID() uuid.UUID { return t.TaskID }

// Type implements Task.
func (t *FuncTask) Type() string { return t.TaskType }

// Execute implements Task.
func (t *FuncTask) Execute(ctx context.Context) error { return t.Fn(ctx) }
