package queue

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// VerificationJob es el trabajo encolado tras un signup. Lleva solo la
// identidad y el código, nunca credenciales.
type VerificationJob struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ErrQueueClosed indica que la cola ya no acepta ni entrega trabajos.
var ErrQueueClosed = errors.New("queue closed")

// Producer encola trabajos de verificación.
type Producer interface {
	Enqueue(ctx context.Context, job VerificationJob) error
}

// Consumer entrega trabajos de verificación; Dequeue bloquea hasta que
// haya un trabajo o se cancele el contexto.
type Consumer interface {
	Dequeue(ctx context.Context) (VerificationJob, error)
}

const verificationQueueKey = "queue:verification"

// RedisQueue implementa Producer y Consumer sobre una lista de redis.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{
		client: client,
		key:    verificationQueueKey,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job VerificationJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (VerificationJob, error) {
	res, err := q.client.BRPop(ctx, 0, q.key).Result()
	if err != nil {
		return VerificationJob{}, err
	}
	// BRPOP devuelve [key, value].
	if len(res) != 2 {
		return VerificationJob{}, errors.New("unexpected brpop reply")
	}

	var job VerificationJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return VerificationJob{}, err
	}
	return job, nil
}

// MemoryQueue implementa Producer y Consumer sobre un canal, para tests
// y ejecución local sin redis.
type MemoryQueue struct {
	jobs chan VerificationJob
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{
		jobs: make(chan VerificationJob, size),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job VerificationJob) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.New("queue full")
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (VerificationJob, error) {
	select {
	case job, ok := <-q.jobs:
		if !ok {
			return VerificationJob{}, ErrQueueClosed
		}
		return job, nil
	case <-ctx.Done():
		return VerificationJob{}, ctx.Err()
	}
}

// Len devuelve la cantidad de trabajos pendientes en memoria.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}
