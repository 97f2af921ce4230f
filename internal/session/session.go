package session

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/funnyboom/internal/analytics"
	"github.com/vancomm/funnyboom/internal/mines"
)

var ErrClosed = errors.New("session closed")

type SoundPlayer interface {
	Play(effect mines.SoundEffect)
}

// ScoresClient must not fail; storage problems come back as an empty or
// unchanged list.
type ScoresClient interface {
	Load(ctx context.Context) []mines.ScoreEntry
	Save(ctx context.Context, entry mines.ScoreEntry) []mines.ScoreEntry
}

type Options struct {
	TickInterval  time.Duration
	LossCardDelay time.Duration
	// SaveTimeout bounds a score save. Saves may outlive the session.
	SaveTimeout time.Duration
	// OnChange runs on the session goroutine after every applied transition.
	OnChange func(state mines.GameState)
}

const (
	DefaultTickInterval  = time.Second
	DefaultLossCardDelay = 1100 * time.Millisecond
	DefaultSaveTimeout   = 5 * time.Second
)

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.LossCardDelay <= 0 {
		o.LossCardDelay = DefaultLossCardDelay
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = DefaultSaveTimeout
	}
	return o
}

type request struct {
	action mines.Action
	// tickGen ties a tick to the ticker that produced it; ticks from a
	// stopped ticker are dropped.
	tickGen uint64
	done    chan struct{}
}

// Session owns one GameState and is the only place the reducer runs.
// Actions from any goroutine are applied one at a time, in the order they
// were sent, by Run.
type Session struct {
	deps    mines.Dependencies
	scores  ScoresClient
	sound   SoundPlayer
	tracker analytics.Tracker
	logger  *slog.Logger
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	wake   chan struct{}

	mu              sync.Mutex
	state           mines.GameState
	lossCardVisible bool
	pending         []request
	closed          bool

	tickGen    uint64
	tickCancel context.CancelFunc

	lossCardGen   uint64
	lossCardTimer *time.Timer

	scoreGen   uint64
	loadCancel context.CancelFunc

	// submitted is the PendingVictory.ID last claimed by SubmitVictory
	submitted uuid.UUID
}

func New(
	state mines.GameState,
	deps mines.Dependencies,
	scores ScoresClient,
	sound SoundPlayer,
	tracker analytics.Tracker,
	logger *slog.Logger,
	opts Options,
) *Session {
	if deps.NewID != nil {
		// SubmitVictory draws ids outside the session goroutine
		var mu sync.Mutex
		newID := deps.NewID
		deps.NewID = func() uuid.UUID {
			mu.Lock()
			defer mu.Unlock()
			return newID()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		deps:    deps,
		scores:  scores,
		sound:   sound,
		tracker: tracker,
		logger:  logger,
		opts:    opts.withDefaults(),
		ctx:     ctx,
		cancel:  cancel,
		wake:    make(chan struct{}, 1),
		state:   state,
	}
}

// Run processes actions until ctx is done, then stops every timer, waits
// for background work and returns. It must be called exactly once.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.cancel)
	defer stop()

	s.mu.Lock()
	s.syncTicker(mines.Idle, s.state.Phase)
	s.mu.Unlock()
	s.scheduleScoreLoad()

	for {
		if s.ctx.Err() != nil {
			s.shutdown()
			return nil
		}

		req, ok := s.next()
		if !ok {
			select {
			case <-s.ctx.Done():
			case <-s.wake:
			}
			continue
		}

		if req.action != nil {
			s.dispatch(req)
		}
		if req.done != nil {
			close(req.done)
		}
	}
}

// Send queues action. It never blocks and is a no-op once the session is
// closed.
func (s *Session) Send(action mines.Action) {
	s.enqueue(request{action: action})
}

// Sync waits until everything sent before it has been applied.
func (s *Session) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if !s.enqueue(request{done: done}) {
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

func (s *Session) Restart() {
	s.Send(mines.StartNewRound{})
}

func (s *Session) ClearVictoryPrompt() {
	s.Send(mines.DismissVictoryPrompt{})
}

// SubmitVictory records the pending win under nickname and dismisses the
// prompt. It reports false when there is no pending win, the win was
// already submitted, or the trimmed nickname is empty.
func (s *Session) SubmitVictory(nickname string) (uuid.UUID, bool) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return uuid.Nil, false
	}

	s.mu.Lock()
	pending := s.state.PendingVictory
	settings := s.state.Settings
	if pending == nil || pending.ID == s.submitted {
		s.mu.Unlock()
		return uuid.Nil, false
	}
	s.submitted = pending.ID
	s.mu.Unlock()

	entry := mines.ScoreEntry{
		ID:             s.deps.NextID(),
		Nickname:       nickname,
		Points:         pending.Points,
		ElapsedSeconds: pending.ElapsedSeconds,
		TotalScore:     pending.TotalScore,
		BoardSize:      settings.BoardSize,
		Difficulty:     settings.Difficulty,
		PlayedAt:       s.deps.Now(),
	}

	s.Send(mines.DismissVictoryPrompt{})
	s.scheduleScoreSave(entry)
	return entry.ID, true
}

// State returns the current state. It is shared with the session and must
// not be modified.
func (s *Session) State() mines.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) LossCardVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lossCardVisible
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	state, visible := s.state, s.lossCardVisible
	s.mu.Unlock()
	return NewSnapshot(state, visible)
}

func (s *Session) enqueue(req request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.pending = append(s.pending, req)
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *Session) next() (request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return request{}, false
	}
	req := s.pending[0]
	s.pending[0] = request{}
	s.pending = s.pending[1:]
	return req, true
}

func (s *Session) dispatch(req request) {
	s.mu.Lock()
	state := s.state
	stale := req.tickGen != 0 && req.tickGen != s.tickGen
	s.mu.Unlock()
	if stale {
		return
	}

	// only this goroutine writes s.state, so reducing without the lock
	// cannot race with another transition
	tr := mines.Reduce(state, req.action, s.deps)
	if len(tr.Events) == 0 && reflect.DeepEqual(tr.State, state) {
		return
	}

	s.mu.Lock()
	previous := s.state.Phase
	s.state = tr.State
	s.syncTicker(previous, tr.State.Phase)
	if previous == mines.Lost && tr.State.Phase != mines.Lost {
		s.hideLossCard()
	}
	s.mu.Unlock()

	if previous != tr.State.Phase {
		s.logger.Debug("phase changed",
			slog.String("from", previous.String()),
			slog.String("to", tr.State.Phase.String()),
		)
	}

	s.runEffects(tr.Events)

	if s.opts.OnChange != nil {
		s.opts.OnChange(tr.State)
	}
}

func (s *Session) runEffects(events []mines.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case mines.PlaySound:
			s.sound.Play(e.Effect)
		case mines.ScheduleLossCardReveal:
			s.scheduleLossCard()
		case mines.TrackBoardStarted:
			s.tracker.TrackBoardStarted(e)
		default:
			s.logger.Warn("unhandled event", slog.Any("event", event))
		}
	}
}

// syncTicker runs with s.mu held.
func (s *Session) syncTicker(previous, current mines.Phase) {
	if previous == current {
		return
	}
	if current != mines.Running {
		s.stopTicker()
		return
	}
	if s.tickCancel != nil || s.closed {
		return
	}

	s.tickGen++
	gen := s.tickGen
	ctx, cancel := context.WithCancel(s.ctx)
	s.tickCancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.opts.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.enqueue(request{action: mines.TimerTick{}, tickGen: gen})
			}
		}
	}()
}

func (s *Session) stopTicker() {
	if s.tickCancel == nil {
		return
	}
	s.tickCancel()
	s.tickCancel = nil
	s.tickGen++
}

func (s *Session) scheduleLossCard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lossCardVisible = false
	if s.lossCardTimer != nil {
		s.lossCardTimer.Stop()
	}
	if s.closed {
		return
	}

	s.lossCardGen++
	gen := s.lossCardGen
	s.lossCardTimer = time.AfterFunc(s.opts.LossCardDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.lossCardGen || s.state.Phase != mines.Lost {
			return
		}
		s.lossCardVisible = true
	})
}

// hideLossCard runs with s.mu held.
func (s *Session) hideLossCard() {
	s.lossCardVisible = false
	s.lossCardGen++
	if s.lossCardTimer != nil {
		s.lossCardTimer.Stop()
		s.lossCardTimer = nil
	}
}

// scheduleScoreLoad replaces any load still in flight.
func (s *Session) scheduleScoreLoad() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.loadCancel != nil {
		s.loadCancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.loadCancel = cancel
	s.scoreGen++
	gen := s.scoreGen
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		scores := s.scores.Load(ctx)
		if ctx.Err() != nil {
			return
		}
		s.deliverScores(gen, scores)
	}()
}

// scheduleScoreSave makes every earlier load or save result stale. The
// write itself is never cancelled by a newer one.
func (s *Session) scheduleScoreSave(entry mines.ScoreEntry) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("dropping score submitted after close", slog.String("id", entry.ID.String()))
		return
	}
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}
	s.scoreGen++
	gen := s.scoreGen
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.opts.SaveTimeout)
		defer cancel()
		scores := s.scores.Save(ctx, entry)
		s.deliverScores(gen, scores)
	}()
}

func (s *Session) deliverScores(gen uint64, scores []mines.ScoreEntry) {
	s.mu.Lock()
	current := gen == s.scoreGen
	s.mu.Unlock()
	if !current {
		s.logger.Debug("dropping stale scores")
		return
	}
	s.Send(mines.ScoresLoaded{Scores: scores})
}

func (s *Session) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.stopTicker()
	s.hideLossCard()
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, req := range pending {
		if req.done != nil {
			close(req.done)
		}
	}
	s.wg.Wait()
}
