package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey   = "gymdesk:emails"
	maxRetries = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues transactional emails in Redis and drains them over SMTP in
// a background worker, so request handlers never block on mail delivery.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		metrics.RecordEmail(job.Type, "marshal_error")
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		metrics.RecordEmail(job.Type, "queue_error")
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		return err
	}

	metrics.RecordEmail(job.Type, "queued")
	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Type:    "generic",
		Created: time.Now(),
	})
}

func (s *Service) SendWelcome(ctx context.Context, to, name, gymName string) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Subject: "Welcome to GymDesk",
		Body:    fmt.Sprintf("Hi %s, your gym %q is now registered on GymDesk. Pick a plan to activate your dashboard.", name, gymName),
		Type:    "welcome",
		Created: time.Now(),
	})
}

func (s *Service) SendSubscriptionReceipt(ctx context.Context, to, name, planName string, amountCents int64, currency string, endDate time.Time) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Subject: "Subscription receipt",
		Body: fmt.Sprintf("Hi %s, your subscription to %q (%.2f %s) is active until %s.",
			name, planName, float64(amountCents)/100, currency, endDate.Format("Jan 2, 2006")),
		Type:    "subscription_receipt",
		Created: time.Now(),
	})
}

// Start drains the queue until ctx is cancelled. Run in a goroutine.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		// redis.Nil means the queue was empty for the poll window
		if err != redis.Nil && ctx.Err() == nil {
			logger.Errorf("Failed to pop email job: %v", err)
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Failed to unmarshal email job: %v", err)
		return
	}

	if err := s.deliver(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)
		job.Tries++
		if job.Tries < maxRetries {
			if data, merr := json.Marshal(job); merr == nil {
				s.redis.LPush(ctx, queueKey, data)
			}
		} else {
			metrics.RecordEmail(job.Type, "failed")
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
}

func (s *Service) deliver(job EmailJob) error {
	if s.smtpHost == "" {
		logger.Debugf("SMTP not configured, dropping email to %s", job.To)
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.fromName, s.from, job.To, job.Subject, job.Body)

	addr := s.smtpHost + ":" + s.smtpPort
	var a smtp.Auth
	if s.smtpUser != "" {
		a = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	return smtp.SendMail(addr, a, s.from, []string{job.To}, []byte(msg))
}
