// Package sync reconciles the in-memory booking collection with local
// persistence and the remote document endpoint: debounced pushes after
// mutations, periodic pulls, and connectivity-driven recovery.
package sync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/internal/remote"
	"github.com/zad-edu/masadr2040/internal/store"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

// LocalRepository is the durable on-device document store. Saves run
// synchronously on every mutation, before any push is scheduled.
type LocalRepository interface {
	Save(ctx context.Context, bookings []models.Booking) error
	Load(ctx context.Context) ([]models.Booking, error)
}

// Recorder receives sync operation outcomes for instrumentation.
type Recorder interface {
	ObserveSyncOp(kind string, success bool, duration time.Duration)
}

// Notifier surfaces user-facing sync notifications (toasts in the UI).
type Notifier func(level, message string)

// Options tunes the orchestrator timers.
type Options struct {
	DebounceDelay time.Duration
	PollInterval  time.Duration
	ProbeInterval time.Duration
}

func (o *Options) fill() {
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = 1500 * time.Millisecond
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 20 * time.Second
	}
	if o.ProbeInterval <= 0 {
		o.ProbeInterval = 5 * time.Second
	}
}

// Orchestrator owns the debounce timer, the poll ticker and the single-flight
// guards. All remote errors stop here: they become a status transition and a
// notification, never a failure of the booking workflow.
type Orchestrator struct {
	opts     Options
	backend  remote.Backend
	prober   remote.Prober
	bookings *store.BookingStore
	local    LocalRepository
	logger   *zap.Logger
	recorder Recorder
	notify   Notifier

	mu             sync.Mutex
	state          models.SyncState
	online         bool
	debounce       *time.Timer
	pushing        bool
	pushQueued     bool
	polling        bool
	applyingRemote bool
	lastNotified   string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New wires the orchestrator to the store: it subscribes itself as the
// mutation listener, so every Upsert/Remove persists locally and arms the
// push debounce.
func New(bookings *store.BookingStore, local LocalRepository, backend remote.Backend, prober remote.Prober, logger *zap.Logger, opts Options) *Orchestrator {
	opts.fill()
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		opts:     opts,
		backend:  backend,
		prober:   prober,
		bookings: bookings,
		local:    local,
		logger:   logger,
		online:   true,
		state: models.SyncState{
			Status:     models.SyncOffline,
			Provider:   backend.Name(),
			Configured: backend.Configured(),
		},
	}
	bookings.Subscribe(o.onMutation)
	return o
}

// SetRecorder attaches an instrumentation sink.
func (o *Orchestrator) SetRecorder(r Recorder) { o.recorder = r }

// SetNotifier attaches the user-notification sink.
func (o *Orchestrator) SetNotifier(n Notifier) { o.notify = n }

// SetBackend swaps the remote endpoint at runtime, used when the user saves
// a new sync configuration. The caller should follow with PollNow so the new
// document takes effect immediately.
func (o *Orchestrator) SetBackend(b remote.Backend) {
	o.mu.Lock()
	o.backend = b
	o.state.Provider = b.Name()
	o.state.Configured = b.Configured()
	o.state.LastError = ""
	o.lastNotified = ""
	o.mu.Unlock()
}

func (o *Orchestrator) currentBackend() remote.Backend {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.backend
}

// State returns the current status snapshot.
func (o *Orchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Start runs the initial pull and launches the poll and connectivity loops.
// An unconfigured backend leaves the orchestrator in the error state with
// local data only; the user is routed toward configuration.
func (o *Orchestrator) Start(ctx context.Context) {
	o.ctx, o.cancel = context.WithCancel(ctx)

	if !o.currentBackend().Configured() {
		o.setStatus(models.SyncError, "remote endpoint not configured")
		o.logger.Warn("sync disabled: remote endpoint not configured")
	} else {
		o.PollNow(o.ctx)
	}

	o.wg.Add(2)
	go o.pollLoop()
	go o.connectivityLoop()
}

// Stop cancels the loops, flushes a pending debounce push, and waits.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	pending := o.debounce != nil && o.debounce.Stop()
	o.debounce = nil
	o.mu.Unlock()

	if pending {
		// One last push so a mutation made just before shutdown is not
		// stranded locally.
		o.PushNow(context.Background())
	}

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// onMutation is the store listener: persist locally first, then arm the
// debounce. Overwrites applied from a poll persist locally but never
// schedule a push of what the remote just sent us.
func (o *Orchestrator) onMutation(snapshot []models.Booking) {
	if err := o.local.Save(context.Background(), snapshot); err != nil {
		o.logger.Error("local persistence failed", zap.Error(err))
	}

	o.mu.Lock()
	if o.applyingRemote {
		o.mu.Unlock()
		return
	}
	if o.debounce != nil {
		o.debounce.Stop()
	}
	o.debounce = time.AfterFunc(o.opts.DebounceDelay, func() {
		ctx := o.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		o.PushNow(ctx)
	})
	o.mu.Unlock()
}

// PushNow pushes the current collection immediately. Only one push may be in
// flight; an overlapping call marks a trailing push instead of sending,
// and the in-flight call re-runs with a fresh snapshot once it completes.
// A mutation whose debounce expires mid-push is therefore never lost.
func (o *Orchestrator) PushNow(ctx context.Context) {
	o.mu.Lock()
	if o.pushing {
		o.pushQueued = true
		o.mu.Unlock()
		return
	}
	o.pushing = true
	o.mu.Unlock()

	for {
		o.pushOnce(ctx)

		o.mu.Lock()
		if !o.pushQueued {
			o.pushing = false
			o.mu.Unlock()
			return
		}
		o.pushQueued = false
		o.mu.Unlock()
	}
}

func (o *Orchestrator) pushOnce(ctx context.Context) {
	backend := o.currentBackend()
	if !backend.Configured() {
		o.setStatus(models.SyncError, "remote endpoint not configured")
		return
	}
	if !o.probeOnline(ctx) {
		o.setStatus(models.SyncOffline, "")
		return
	}

	o.setStatus(models.SyncSyncing, "")
	snapshot := o.bookings.List()

	start := time.Now()
	err := backend.Push(ctx, snapshot)
	o.observe("push", err, time.Since(start))

	if err != nil {
		o.handleRemoteError("push", err)
		return
	}

	now := time.Now().UTC()
	o.mu.Lock()
	o.state.Status = models.SyncSynced
	o.state.LastError = ""
	o.state.LastPushedAt = &now
	o.mu.Unlock()
	o.logger.Info("remote push completed", zap.Int("bookings", len(snapshot)))
}

// PollNow pulls the remote document and applies it when it differs. Single
// flight: an overlapping poll is skipped entirely.
func (o *Orchestrator) PollNow(ctx context.Context) {
	o.mu.Lock()
	if o.polling {
		o.mu.Unlock()
		return
	}
	o.polling = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.polling = false
		o.mu.Unlock()
	}()

	backend := o.currentBackend()
	if !backend.Configured() {
		o.setStatus(models.SyncError, "remote endpoint not configured")
		return
	}
	if !o.probeOnline(ctx) {
		o.setStatus(models.SyncOffline, "")
		return
	}

	o.setStatus(models.SyncSyncing, "")

	start := time.Now()
	fetched, err := backend.Pull(ctx)
	o.observe("pull", err, time.Since(start))

	if err != nil {
		if appErrors.Is(err, appErrors.ErrRemoteNotFound.Code) && backend.SupportsAutoCreate() {
			o.bootstrap(ctx)
			return
		}
		o.handleRemoteError("pull", err)
		return
	}

	if !o.bookings.Equal(fetched) {
		// Remote wins: whole-document overwrite, no merge.
		o.mu.Lock()
		o.applyingRemote = true
		o.mu.Unlock()
		o.bookings.Replace(fetched)
		o.mu.Lock()
		o.applyingRemote = false
		o.mu.Unlock()
		o.logger.Info("remote document applied", zap.Int("bookings", len(fetched)))
	}

	now := time.Now().UTC()
	o.mu.Lock()
	o.state.Status = models.SyncSynced
	o.state.LastError = ""
	o.state.LastPulledAt = &now
	o.mu.Unlock()
}

// bootstrap creates the missing remote document from the current local
// snapshot (the empty collection on a fresh install) and treats it as a
// successful sync, not a failure.
func (o *Orchestrator) bootstrap(ctx context.Context) {
	snapshot := o.bookings.List()
	o.logger.Info("remote document missing, bootstrapping", zap.Int("bookings", len(snapshot)))

	start := time.Now()
	err := o.currentBackend().Push(ctx, snapshot)
	o.observe("push", err, time.Since(start))

	if err != nil {
		o.handleRemoteError("bootstrap", err)
		return
	}

	now := time.Now().UTC()
	o.mu.Lock()
	o.state.Status = models.SyncSynced
	o.state.LastError = ""
	o.state.LastPushedAt = &now
	o.state.LastPulledAt = &now
	o.mu.Unlock()
}

func (o *Orchestrator) pollLoop() {
	defer o.wg.Done()
	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.ctx.Done():
			return
		case <-ticker.C:
			o.PollNow(o.ctx)
		}
	}
}

// connectivityLoop watches the prober and drives the offline/online
// transitions: offline is reported immediately, and a reconnect forces a
// push of whatever local persistence holds, covering mutations made while
// disconnected.
func (o *Orchestrator) connectivityLoop() {
	defer o.wg.Done()
	ticker := time.NewTicker(o.opts.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.ctx.Done():
			return
		case <-ticker.C:
			online := o.prober.Online(o.ctx)

			o.mu.Lock()
			was := o.online
			o.online = online
			o.mu.Unlock()

			switch {
			case was && !online:
				o.setStatus(models.SyncOffline, "")
				o.logger.Warn("connectivity lost")
			case !was && online:
				o.logger.Info("connectivity restored")
				o.recoverAfterReconnect()
			}
		}
	}
}

func (o *Orchestrator) recoverAfterReconnect() {
	if !o.currentBackend().Configured() {
		return
	}
	persisted, err := o.local.Load(o.ctx)
	if err != nil {
		o.logger.Error("failed to read local persistence after reconnect", zap.Error(err))
		return
	}
	if !o.bookings.Equal(persisted) {
		o.mu.Lock()
		o.applyingRemote = true
		o.mu.Unlock()
		o.bookings.Replace(persisted)
		o.mu.Lock()
		o.applyingRemote = false
		o.mu.Unlock()
	}
	o.PushNow(o.ctx)
}

// probeOnline combines the watcher's last observation with a fresh probe, so
// a push scheduled while offline short-circuits without network I/O.
func (o *Orchestrator) probeOnline(ctx context.Context) bool {
	online := o.prober.Online(ctx)
	o.mu.Lock()
	o.online = online
	o.mu.Unlock()
	return online
}

func (o *Orchestrator) setStatus(status models.SyncStatus, lastError string) {
	o.mu.Lock()
	o.state.Status = status
	o.state.LastError = lastError
	o.state.Configured = o.backend.Configured()
	o.mu.Unlock()
}

// handleRemoteError translates adapter failures into a status and a single
// notification per error code, so a flapping endpoint does not spam the user.
func (o *Orchestrator) handleRemoteError(op string, err error) {
	appErr := appErrors.FromError(err)

	switch appErr.Code {
	case appErrors.ErrNetwork.Code, appErrors.ErrOffline.Code:
		// Transient: fall back to local data, retry on the next cycle.
		o.setStatus(models.SyncOffline, appErr.Message)
	case appErrors.ErrNotConfigured.Code, appErrors.ErrRemoteAuth.Code, appErrors.ErrRemoteNotFound.Code:
		// Persistent misconfiguration: only the user can fix this.
		o.setStatus(models.SyncError, appErr.Message)
		o.notifyOnce(appErr.Code, appErr.Message)
	case appErrors.ErrRemoteShape.Code:
		o.setStatus(models.SyncError, appErr.Message)
		o.notifyOnce(appErr.Code, "remote data has an unexpected shape; keeping local data")
	default:
		o.setStatus(models.SyncError, appErr.Message)
		o.notifyOnce(appErr.Code, appErr.Message)
	}

	o.logger.Warn("remote sync failed",
		zap.String("op", op),
		zap.String("code", appErr.Code),
		zap.Error(err),
	)
}

func (o *Orchestrator) notifyOnce(code, message string) {
	o.mu.Lock()
	repeat := o.lastNotified == code
	o.lastNotified = code
	o.mu.Unlock()

	if repeat || o.notify == nil {
		return
	}
	o.notify("error", message)
}

func (o *Orchestrator) observe(kind string, err error, duration time.Duration) {
	if o.recorder != nil {
		o.recorder.ObserveSyncOp(kind, err == nil, duration)
	}
}
