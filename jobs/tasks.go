package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeAuditPrune is the task type for audit log retention pruning.
	TaskTypeAuditPrune = "audit:prune"
)

// AuditPrunePayload carries the retention window for a prune run.
type AuditPrunePayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewAuditPruneTask constructs an Asynq task that prunes audit records older
// than the retention window.
func NewAuditPruneTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(AuditPrunePayload{RetentionHours: int(retention.Hours())})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditPrune, data), nil
}

// AuditPruner deletes audit records created before the cutoff.
type AuditPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditPruneJob processes TaskTypeAuditPrune tasks.
type AuditPruneJob struct {
	pruner AuditPruner
	logger *slog.Logger
}

// NewAuditPruneJob constructs an AuditPruneJob.
func NewAuditPruneJob(pruner AuditPruner, logger *slog.Logger) *AuditPruneJob {
	return &AuditPruneJob{pruner: pruner, logger: logger}
}

// Handle prunes expired audit records. A retention of zero or less disables
// pruning.
func (j *AuditPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload AuditPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.RetentionHours <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-time.Duration(payload.RetentionHours) * time.Hour)
	pruned, err := j.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("audit prune complete",
			slog.Int64("pruned", pruned),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
