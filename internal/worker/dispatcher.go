package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"zettel-todo/internal/email"
	"zettel-todo/internal/queue"
)

// JobStatus es el estado terminal de un trabajo de verificación.
type JobStatus string

const (
	StatusSkipped JobStatus = "skipped"
	StatusSent    JobStatus = "sent"
	StatusFailed  JobStatus = "failed"
)

const sendTimeout = 10 * time.Second

// Dispatcher consume trabajos de verificación y envía los correos.
// Es fire-and-forget: un fallo se registra y el trabajo no se reintenta.
type Dispatcher struct {
	logger  *zap.Logger
	jobs    queue.Consumer
	sender  email.Sender
	devMode bool
}

func NewDispatcher(logger *zap.Logger, jobs queue.Consumer, sender email.Sender, devMode bool) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		jobs:    jobs,
		sender:  sender,
		devMode: devMode,
	}
}

// Run consume la cola hasta que se cancele el contexto.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		job, err := d.jobs.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if errors.Is(err, queue.ErrQueueClosed) {
				return nil
			}
			d.logger.Error("dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		d.Process(ctx, job)
	}
}

// Process envía el correo de un trabajo y devuelve su estado terminal.
func (d *Dispatcher) Process(ctx context.Context, job queue.VerificationJob) JobStatus {
	if d.devMode {
		d.logger.Info("development mode, email sending skipped",
			zap.String("email", job.Email),
			zap.String("code", job.Code),
		)
		return StatusSkipped
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.SendVerificationCode(sendCtx, job.Email, job.Code); err != nil {
		d.logger.Error("verification email failed",
			zap.Error(err),
			zap.String("email", job.Email),
		)
		return StatusFailed
	}

	d.logger.Info("verification email sent", zap.String("email", job.Email))
	return StatusSent
}
