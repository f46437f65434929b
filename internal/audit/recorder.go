package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// RecorderStore is the persistence surface the recorder needs.
type RecorderStore interface {
	Insert(ctx context.Context, userID uuid.UUID, action, details string) error
}

// Recorder writes audit records for privileged mutations. Writes are
// fire-and-forget: a failed insert is logged and swallowed so that it never
// turns a successful domain operation into an error, and there is no retry.
type Recorder struct {
	store  RecorderStore
	logger *slog.Logger
}

// NewRecorder constructs a Recorder.
func NewRecorder(store RecorderStore, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one audit entry for the acting user.
func (r *Recorder) Record(ctx context.Context, actorID uuid.UUID, action, details string) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.Insert(ctx, actorID, action, details); err != nil {
		if r.logger != nil {
			r.logger.Warn("audit write failed",
				slog.String("action", action),
				slog.Any("error", err))
		}
	}
}
