package email

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/leetlab/internal/leetlab_errors"
	"gopkg.in/gomail.v2"
)

type EmailPurpose string
type EmailBodyType string

const (
	KeyEmailSender                            = "SENDER_EMAIL"
	KeyEmailSenderPassword                    = "SENDER_EMAIL_PASSWORD"
	KeyEmailSMTPServer                        = "smtp.gmail.com"
	KeyEmailSMTPPort                          = 587
	KeyEmailFrom                              = "From"
	KeyEmailTo                                = "To"
	KeyEmailSubject                           = "Subject"
	KeyEmailBodyPlain           EmailBodyType = "text/plain"
	KeyEmailBodyHTML            EmailBodyType = "text/html"
	PurposeEmailVerification    EmailPurpose  = "verify_email"
	PurposeEmailPasswordReset   EmailPurpose  = "reset_password"
	defaultEmailChannelCapacity               = 100
	maxSendAttempts                           = 3
)

type EmailRequest struct {
	To       []string
	Subject  string
	Body     string
	BodyType EmailBodyType
	Purpose  EmailPurpose
}

type emailJob struct {
	EmailRequest
	from string
}

// Dialer delivers composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService hands mails to a fixed pool of SMTP workers through a
// buffered channel. Send never waits for delivery.
type EmailService struct {
	from    string
	dialer  Dialer
	jobs    chan emailJob
	done    chan struct{}
	stop    sync.Once
	workers sync.WaitGroup
	logger  *logrus.Entry
}

func NewEmailService(from, password string) *EmailService {
	dialer := gomail.NewDialer(KeyEmailSMTPServer, KeyEmailSMTPPort, from, password)
	return NewEmailServiceWithDialer(from, dialer, defaultEmailChannelCapacity)
}

func NewEmailServiceWithDialer(from string, dialer Dialer, capacity int) *EmailService {
	if capacity <= 0 {
		capacity = defaultEmailChannelCapacity
	}
	return &EmailService{
		from:   from,
		dialer: dialer,
		jobs:   make(chan emailJob, capacity),
		done:   make(chan struct{}),
		logger: logrus.WithField("from", "email service"),
	}
}

func (e *EmailService) StartEmailWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	for i := range n {
		e.workers.Add(1)
		go e.worker(i + 1)
	}
	e.logger.Infof("started %d email workers", n)
}

// Stop terminates the workers. Jobs still queued are dropped.
func (e *EmailService) Stop() {
	e.stop.Do(func() {
		close(e.done)
	})
	e.workers.Wait()
}

func (e *EmailService) Send(ctx context.Context, req EmailRequest) error {
	if e.from == "" {
		log.Error("sender email is not configured")
		return leetlab_errors.ErrEmailServiceStopped
	}
	if len(req.To) == 0 {
		return fmt.Errorf("%w, mail has no recipients", leetlab_errors.ErrInvalidInput)
	}
	if req.BodyType == "" {
		req.BodyType = KeyEmailBodyPlain
	}
	job := emailJob{
		EmailRequest: req,
		from:         e.from,
	}

	// when all the workers are dead, it shouldn't block indefinetely
	select {
	case <-e.done:
		return leetlab_errors.ErrEmailServiceStopped
	case <-ctx.Done():
		log.Errorf("email job cancelled: %v", ctx.Err())
		return errors.Join(leetlab_errors.ErrEmailServiceStopped, ctx.Err())
	case e.jobs <- job:
		return nil
	}
}

func (e *EmailService) worker(id int) {
	defer e.workers.Done()
	workerLogger := e.logger.WithField("worker", id)
	for {
		select {
		case <-e.done:
			workerLogger.Debug("email worker stopped")
			return
		case job := <-e.jobs:
			e.deliver(workerLogger, job)
		}
	}
}

func (e *EmailService) deliver(logger *logrus.Entry, job emailJob) {
	m := gomail.NewMessage()
	m.SetHeader(KeyEmailFrom, job.from)
	m.SetHeader(KeyEmailTo, job.To...)
	m.SetHeader(KeyEmailSubject, job.Subject)
	m.SetBody(string(job.BodyType), job.Body)

	jobLogger := logger.WithFields(logrus.Fields{
		"purpose":    job.Purpose,
		"recipients": len(job.To),
	})
	var err error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err = e.dialer.DialAndSend(m); err == nil {
			jobLogger.Info("mail sent")
			return
		}
		jobLogger.Warnf("attempt %d to send mail failed, %v", attempt, err)
	}
	jobLogger.Errorf("giving up on mail, %v", err)
}
