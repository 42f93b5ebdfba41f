// Package notify renders lifecycle emails and delivers them.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jobportal/internal/logger"
	"jobportal/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationSubmitted is sent to the applicant after a successful submission.
type ApplicationSubmitted struct {
	To            string
	ApplicantName string
	JobTitle      string
	Company       string
}

// StatusChanged is sent to the applicant when the status value actually changes.
type StatusChanged struct {
	To            string
	ApplicantName string
	JobTitle      string
	Company       string
	Status        models.ApplicationStatus
}

// JobUpdated is sent to every applicant of a job that was closed or reopened.
type JobUpdated struct {
	Recipients []string
	JobID      uuid.UUID
	JobTitle   string
	Company    string
	Status     models.JobStatus
	Deadline   *time.Time
}

// Dispatcher sends OTP mail synchronously and lifecycle mail in the background.
type Dispatcher struct {
	mailer   Mailer
	renderer *Renderer
	log      *zap.Logger
	timeout  time.Duration
	otpTTL   time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. timeout bounds each background send.
func NewDispatcher(mailer Mailer, renderer *Renderer, log *zap.Logger, timeout, otpTTL time.Duration) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{mailer: mailer, renderer: renderer, log: log, timeout: timeout, otpTTL: otpTTL}
}

// SendOTP delivers a verification code. Failure is returned so the caller does not keep the code.
func (d *Dispatcher) SendOTP(ctx context.Context, email, code string) error {
	body, err := d.renderer.OTP(code, d.otpTTL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := d.mailer.Send(ctx, Message{To: email, Subject: "Verification Email", HTML: body}); err != nil {
		return fmt.Errorf("delivering otp: %w", err)
	}
	return nil
}

func (d *Dispatcher) ApplicationSubmitted(ctx context.Context, e ApplicationSubmitted) {
	d.dispatch(ctx, "application_submitted", func() ([]Message, error) {
		body, err := d.renderer.ApplicationSubmitted(e)
		if err != nil {
			return nil, err
		}
		return []Message{{To: e.To, Subject: "Application Submitted: " + e.JobTitle, HTML: body}}, nil
	})
}

func (d *Dispatcher) StatusChanged(ctx context.Context, e StatusChanged) {
	d.dispatch(ctx, "status_changed", func() ([]Message, error) {
		body, err := d.renderer.StatusChanged(e)
		if err != nil {
			return nil, err
		}
		return []Message{{To: e.To, Subject: "Application Status Update: " + e.JobTitle, HTML: body}}, nil
	})
}

func (d *Dispatcher) JobUpdated(ctx context.Context, e JobUpdated) {
	if len(e.Recipients) == 0 {
		return
	}
	d.dispatch(ctx, "job_updated", func() ([]Message, error) {
		body, err := d.renderer.JobUpdated(e)
		if err != nil {
			return nil, err
		}
		msgs := make([]Message, 0, len(e.Recipients))
		for _, to := range e.Recipients {
			msgs = append(msgs, Message{To: to, Subject: "Job Update: " + e.JobTitle, HTML: body})
		}
		return msgs, nil
	})
}

// dispatch renders and sends in a goroutine. Errors are logged and dropped.
func (d *Dispatcher) dispatch(ctx context.Context, event string, build func() ([]Message, error)) {
	log := logger.WithRequestID(ctx, d.log).With(zap.String("event", event))
	// Keep request values (request id) but not the request's cancellation.
	base := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		msgs, err := build()
		if err != nil {
			log.Warn("notification render failed", zap.Error(err))
			return
		}
		for _, msg := range msgs {
			sendCtx, cancel := context.WithTimeout(base, d.timeout)
			err := d.mailer.Send(sendCtx, msg)
			cancel()
			if err != nil {
				log.Warn("notification delivery failed", zap.String("to", msg.To), zap.Error(err))
				continue
			}
			log.Debug("notification sent", zap.String("to", msg.To))
		}
	}()
}

// Wait blocks until background sends finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("pending notifications abandoned"), ctx.Err())
	}
}
