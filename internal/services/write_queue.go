package services

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrWriteQueueIsFull = errors.New("очередь записи заполнена")
	ErrWriteQueueClosed = errors.New("очередь записи закрыта")
)

// WriteJob изменение хранилища, выполняемое в очереди записи.
type WriteJob func(ctx context.Context) error

type queuedJob struct {
	run  WriteJob
	done chan error
}

// WriteQueue выполняет задания по одному в единственном воркере.
// Через нее проходят все операции чтение-изменение-запись коллекции,
// поэтому два одновременных создания не затирают друг друга.
type WriteQueue struct {
	jobs    chan queuedJob
	stopped <-chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex // защищает закрытие канала jobs от одновременной отправки
	closing bool
}

// NewWriteQueue запускает воркер очереди.
// - ctx: время жизни воркера; после отмены новые задания не выполняются.
// - capacity: сколько заданий может ждать своей очереди.
func NewWriteQueue(ctx context.Context, capacity int) *WriteQueue {
	if capacity < 1 {
		capacity = 1
	}

	queue := &WriteQueue{
		jobs:    make(chan queuedJob, capacity),
		stopped: ctx.Done(),
	}
	queue.start(ctx)

	return queue
}

func (q *WriteQueue) start(ctx context.Context) {
	q.wg.Add(1)

	go func() {
		defer q.wg.Done()

		for {
			select {
			case job, ok := <-q.jobs:
				if !ok {
					return
				}
				job.done <- job.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Do ставит задание в очередь и ждет его завершения.
// Возвращает ошибку задания, ErrWriteQueueIsFull, ErrWriteQueueClosed
// или ошибку контекста вызывающего.
func (q *WriteQueue) Do(ctx context.Context, run WriteJob) error {
	job := queuedJob{run: run, done: make(chan error, 1)}

	if err := q.enqueue(job); err != nil {
		return err
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-q.stopped:
		return ErrWriteQueueClosed
	}
}

func (q *WriteQueue) enqueue(job queuedJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closing {
		return ErrWriteQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrWriteQueueIsFull
	}
}

// Shutdown перестает принимать задания, выполняет уже поставленные
// и дожидается остановки воркера.
func (q *WriteQueue) Shutdown() {
	q.mu.Lock()
	if !q.closing {
		q.closing = true
		close(q.jobs)
	}
	q.mu.Unlock()

	q.wg.Wait()
}
