package review

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-unionreg/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BacklogEntry counts reviews waiting at one step of one chain
type BacklogEntry struct {
	WorkflowType string    `json:"workflow_type"`
	StepIndex    int       `json:"step_index"`
	Role         string    `json:"role"`
	Pending      int       `json:"pending"`
	Oldest       time.Time `json:"oldest"`
}

// Digest periodically logs the review backlog. It only reads.
type Digest struct {
	coordinator *Coordinator
	logger      *zap.Logger
	schedule    string
	scheduler   *cron.Cron
}

func NewDigest(cfg *config.Config, coordinator *Coordinator, logger *zap.Logger) (*Digest, error) {
	if cfg.DigestSchedule == "" {
		return &Digest{coordinator: coordinator, logger: logger.Named("digest")}, nil
	}
	if _, err := cron.ParseStandard(cfg.DigestSchedule); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.DigestSchedule, err)
	}
	return &Digest{
		coordinator: coordinator,
		logger:      logger.Named("digest"),
		schedule:    cfg.DigestSchedule,
	}, nil
}

// Backlog groups pending instances by workflow type and step
func (d *Digest) Backlog(ctx context.Context) ([]BacklogEntry, error) {
	pending, err := d.coordinator.ListUnderReview(ctx)
	if err != nil {
		return nil, err
	}

	type key struct {
		workflowType string
		step         int
	}
	byKey := make(map[key]*BacklogEntry)
	for i := range pending {
		inst := &pending[i]
		k := key{inst.WorkflowType, inst.Status.Step}
		entry, ok := byKey[k]
		if !ok {
			entry = &BacklogEntry{WorkflowType: k.workflowType, StepIndex: k.step, Oldest: inst.CreatedAt}
			if step, ok := d.coordinator.engine.CurrentStep(inst); ok {
				entry.Role = step.AuthorityRole
			}
			byKey[k] = entry
		}
		entry.Pending++
		if inst.CreatedAt.Before(entry.Oldest) {
			entry.Oldest = inst.CreatedAt
		}
	}

	out := make([]BacklogEntry, 0, len(byKey))
	for _, e := range byKey {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkflowType != out[j].WorkflowType {
			return out[i].WorkflowType < out[j].WorkflowType
		}
		return out[i].StepIndex < out[j].StepIndex
	})
	return out, nil
}

// Run logs one digest
func (d *Digest) Run(ctx context.Context) {
	backlog, err := d.Backlog(ctx)
	if err != nil {
		d.logger.Error("failed to build review backlog", zap.Error(err))
		return
	}
	total := 0
	for _, e := range backlog {
		total += e.Pending
		d.logger.Info("reviews awaiting decision",
			zap.String("workflow_type", e.WorkflowType),
			zap.Int("step", e.StepIndex),
			zap.String("role", e.Role),
			zap.Int("pending", e.Pending),
			zap.Time("oldest", e.Oldest),
		)
	}
	d.logger.Info("review backlog digest", zap.Int("pending_total", total))
}

// Start schedules Run; it does nothing when no schedule is configured
func (d *Digest) Start() error {
	if d.schedule == "" {
		d.logger.Info("digest scheduler disabled")
		return nil
	}
	d.scheduler = cron.New()
	if _, err := d.scheduler.AddFunc(d.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		d.Run(ctx)
	}); err != nil {
		return err
	}
	d.scheduler.Start()
	d.logger.Info("digest scheduler started", zap.String("schedule", d.schedule))
	return nil
}

func (d *Digest) Stop() {
	if d.scheduler == nil {
		return
	}
	<-d.scheduler.Stop().Done()
}
