package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

type Sender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Handler delivers queued emails from the worker process.
type Handler struct {
	Sender     Sender
	Recipients []string
	Log        log.Log
}

func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeDemoRequestEmail, h.HandleDemoRequest)
}

func (h *Handler) HandleDemoRequest(ctx context.Context, t *asynq.Task) error {
	var payload model.DemoRequestEmailTask
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.Log.Error("gateway/mail", err.Error(), "HandleDemoRequest", string(t.Payload()))
		return fmt.Errorf("decode demo request payload: %v: %w", err, asynq.SkipRetry)
	}
	subject, body := FormatDemoRequest(&payload)
	if err := h.Sender.Send(ctx, h.Recipients, subject, body); err != nil {
		h.Log.Error("gateway/mail", err.Error(), "HandleDemoRequest", payload.DemoRequestID)
		return err
	}
	h.Log.Info("gateway/mail", "demo request email sent", "HandleDemoRequest", payload.DemoRequestID)
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func FormatDemoRequest(p *model.DemoRequestEmailTask) (subject, body string) {
	subject = "New Demo Request Received"
	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", p.FullName)
	fmt.Fprintf(&b, "Email:   %s\n", p.Email)
	fmt.Fprintf(&b, "Company: %s\n", orDash(p.Company))
	fmt.Fprintf(&b, "Phone:   %s\n\n", orDash(p.Phone))
	fmt.Fprintf(&b, "Date/Time: %s\n\n", p.Datetime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Message:\n%s\n\n", orDash(p.Message))
	fmt.Fprintf(&b, "Requested at: %s", p.RequestedAt.Format("2006-01-02 15:04"))
	return subject, b.String()
}
