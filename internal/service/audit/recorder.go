package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
)

// Recorder appends audit rows and mirrors them onto the message broker.
// Record is fire-and-forget: the write runs after the primary operation has
// already committed, on its own goroutine with its own deadline, and any
// failure is only logged. Audit logging can therefore never turn a
// successful business operation into a failed response.
type Recorder struct {
	Repo    *repository.AuditRepo
	Publish bool // also publish SecurityEvents to RabbitMQ
}

func NewRecorder(repo *repository.AuditRepo, publish bool) *Recorder {
	return &Recorder{Repo: repo, Publish: publish}
}

// Record appends one audit event. userID is nil for anonymous events such
// as a failed login with an unknown email. The provided context is only
// used to inherit values; the write itself is detached from the request.
func (r *Recorder) Record(_ context.Context, userID *uint64, action, resource string, details map[string]any, ip, userAgent string) {
	entry := model.AuditLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Repo.Insert(ctx, entry); err != nil {
			log.Printf("audit: insert failed (action=%s): %v", action, err)
		}
		if r.Publish {
			_ = publishSecurityEvent(ctx, queue.SecurityEvent{
				AuditID:   entry.ID,
				UserID:    entry.UserID,
				Action:    entry.Action,
				Resource:  entry.Resource,
				Details:   entry.Details,
				IP:        entry.IP,
				UserAgent: entry.UserAgent,
				CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			})
		}
	}()
}
