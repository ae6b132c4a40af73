package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/macrat/statusboard/internal/schedule"
	"github.com/robfig/cron/v3"
)

// ErrAlreadyStarted is returned if Poller.Start called twice without Stop.
var ErrAlreadyStarted = errors.New("poller is already started")

// Refresher is something that refreshes itself, usually *Dashboard.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Poller runs refresh cycles on a schedule.
//
// The scheduler is acquired by Start and released by Stop.
// A Poller can be started again after Stop.
type Poller struct {
	target   Refresher
	schedule schedule.Schedule

	lock      sync.Mutex
	scheduler *cron.Cron
	cancel    context.CancelFunc
	kicks     *sync.WaitGroup
}

// NewPoller makes a Poller that refreshes r on s.
// schedule.DefaultSchedule is used if s is nil.
func NewPoller(r Refresher, s schedule.Schedule) *Poller {
	if s == nil {
		s = schedule.DefaultSchedule
	}
	return &Poller{
		target:   r,
		schedule: s,
	}
}

// Schedule returns the schedule of this Poller.
func (p *Poller) Schedule() schedule.Schedule {
	return p.schedule
}

// Start runs the first refresh immediately and schedules following refreshes.
// Cycles are fired by the schedule even if the previous cycle has not finished yet.
func (p *Poller) Start(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.scheduler != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	job := cron.FuncJob(func() {
		p.target.Refresh(ctx)
	})

	kicks := &sync.WaitGroup{}
	kicks.Add(1)
	go func() {
		defer kicks.Done()
		job.Run()
	}()

	scheduler := cron.New()
	scheduler.Schedule(p.schedule, job)
	scheduler.Start()

	p.scheduler = scheduler
	p.cancel = cancel
	p.kicks = kicks

	return nil
}

// Stop stops scheduling and aborts running refreshes.
// The returned context is done when all running refreshes have returned.
func (p *Poller) Stop() context.Context {
	p.lock.Lock()
	defer p.lock.Unlock()

	done, finish := context.WithCancel(context.Background())

	if p.scheduler == nil {
		finish()
		return done
	}

	stopped := p.scheduler.Stop()
	p.cancel()
	kicks := p.kicks

	p.scheduler = nil
	p.cancel = nil
	p.kicks = nil

	go func() {
		<-stopped.Done()
		kicks.Wait()
		finish()
	}()

	return done
}
