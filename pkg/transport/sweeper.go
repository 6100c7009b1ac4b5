package transport

import (
	"context"
	"time"

	"go.uber.org/zap"
	"transporter-coordinator/pkg/common"
)

// Sweeper runs the periodic liveness sweep on a single goroutine. Sweeps
// are serialized: a tick is only handled after the previous pass finished.
type Sweeper struct {
	transport *Transport
	interval  time.Duration
	timeout   time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(t *Transport) *Sweeper {
	return &Sweeper{
		transport: t,
		interval:  t.Cfg.SweepInterval,
		timeout:   t.Cfg.MachineTimeout,
	}
}

// SweepOnce runs exactly one sweep pass. Tests call this directly instead
// of waiting out the ticker.
func (s *Sweeper) SweepOnce() (int64, error) {
	return s.transport.Liveness.Sweep(s.timeout)
}

func (s *Sweeper) Start(ctx context.Context) {
	if s.done != nil {
		return
	}

	logger := common.GetLoggerWith(
		common.LoggerNameSweeper,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySweep),
	)

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		logger.Info("Sweeper started",
			zap.Duration("interval", s.interval),
			zap.Duration("timeout", s.timeout))

		for {
			select {
			case <-ctx.Done():
				logger.Info("Sweeper stopped")
				return
			case <-ticker.C:
				if _, err := s.SweepOnce(); err != nil {
					// transient store errors: log and try again next tick
					logger.Error("Sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}
