// File: services/notify/sweep.go
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/models"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

// ErrSweepInProgress is returned when another sweep holds the lock.
var ErrSweepInProgress = fmt.Errorf("a notification sweep is already running")

// Sweep scans, per notification kind, for registered submissions whose slot
// falls inside the kind's threshold window and whose flag is still unset,
// batch-sends to all of them in one gateway call and conditionally flips
// their flags. The Redis lock serializes overlapping invocations; the
// conditional flag update protects each record even if the lock is lost.
func (s *DefaultScheduler) Sweep(ctx context.Context) (models.SweepStats, error) {
	locked, release, err := s.Lock.TryLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !locked {
		return nil, ErrSweepInProgress
	}
	defer release()

	logger := utils.GetLogger()
	stats := make(models.SweepStats, len(models.AllNotificationKinds))

	for _, kind := range models.AllNotificationKinds {
		kindStats, err := s.sweepKind(ctx, kind)
		if err != nil {
			logger.Error("sweep failed for kind", zap.String("kind", string(kind)), zap.Error(err))
			return stats, err
		}
		stats[kind] = kindStats
	}
	return stats, nil
}

func (s *DefaultScheduler) sweepKind(ctx context.Context, kind models.NotificationKind) (models.SweepKindStats, error) {
	logger := utils.GetLogger()
	now := s.now()

	// The window starts at now, so slots already past are never swept.
	due, err := s.Subs.DueForNotification(ctx, kind, now, now.Add(kind.Threshold()))
	if err != nil {
		return models.SweepKindStats{}, fmt.Errorf("query due submissions: %w", err)
	}

	stats := models.SweepKindStats{Found: len(due)}
	if len(due) == 0 {
		return stats, nil
	}

	phones := make([]string, len(due))
	for i, sub := range due {
		phones[i] = sub.Phone
	}

	// One bulk gateway call for the whole batch; template variables are
	// shared because every match sits in the same time window.
	vars := s.kindVars(kind, map[string]string{})
	if err := s.Gateway.SendBulk(ctx, kindTemplate(kind), phones, vars); err != nil {
		// Full-batch failure: no flags flip, the next sweep retries everyone.
		stats.Failed = len(due)
		logger.Warn("sweep bulk send failed",
			zap.String("kind", string(kind)),
			zap.Int("count", len(due)),
			zap.Error(err))
		return stats, nil
	}

	modified, err := s.Subs.MarkNotificationSent(ctx, kind, phones, s.now())
	if err != nil {
		return stats, fmt.Errorf("mark batch sent: %w", err)
	}
	stats.Sent = int(modified)

	logger.Info("sweep batch sent",
		zap.String("kind", string(kind)),
		zap.Int("found", stats.Found),
		zap.Int("sent", stats.Sent))
	return stats, nil
}
