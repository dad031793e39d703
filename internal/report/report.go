package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/bowerhall/courier/internal/logger"
	"github.com/bowerhall/courier/internal/router"
)

// DeliverFunc sends the summary text to the owner conversation.
type DeliverFunc func(text string) error

// Reporter sends a scheduled traffic and host summary to the operator.
type Reporter struct {
	cron     *cron.Cron
	router   *router.Router
	deliver  DeliverFunc
	schedule string
	started  time.Time

	mu   sync.Mutex
	last router.Stats
}

func New(r *router.Router, schedule string, deliver DeliverFunc) *Reporter {
	if schedule == "" {
		schedule = "0 9 * * *"
	}

	return &Reporter{
		cron:     cron.New(),
		router:   r,
		deliver:  deliver,
		schedule: schedule,
		started:  time.Now(),
	}
}

func (rp *Reporter) Start() error {
	if _, err := rp.cron.AddFunc(rp.schedule, rp.send); err != nil {
		return fmt.Errorf("bad report schedule %q: %w", rp.schedule, err)
	}

	rp.cron.Start()
	logger.Info("report scheduled", "schedule", rp.schedule)
	return nil
}

func (rp *Reporter) Stop() {
	rp.cron.Stop()
}

func (rp *Reporter) send() {
	if err := rp.deliver(rp.Summary()); err != nil {
		logger.Error("report delivery failed", "error", err)
	}
}

// Summary builds the report text: message totals since the last report plus
// current host load.
func (rp *Reporter) Summary() string {
	stats := rp.router.Stats()

	rp.mu.Lock()
	delta := router.Stats{
		Admitted: stats.Admitted - rp.last.Admitted,
		Rejected: stats.Rejected - rp.last.Rejected,
		Answered: stats.Answered - rp.last.Answered,
		Failed:   stats.Failed - rp.last.Failed,
	}
	rp.last = stats
	rp.mu.Unlock()

	text := fmt.Sprintf(
		"Courier report\nadmitted: %d\nrejected: %d\nanswered: %d\nfailed: %d\nactive conversations: %d\nuptime: %s",
		delta.Admitted, delta.Rejected, delta.Answered, delta.Failed,
		rp.router.Queue().Active(),
		time.Since(rp.started).Round(time.Minute),
	)

	if vm, err := mem.VirtualMemory(); err == nil {
		text += fmt.Sprintf("\nmemory: %.0f%%", vm.UsedPercent)
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		text += fmt.Sprintf("\ncpu: %.0f%%", percents[0])
	}

	return text
}
