package sound

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vancomm/funnyboom/internal/mines"
)

// Speaker plays effects on the default audio device through one mixer.
type Speaker struct {
	mu          sync.Mutex
	synth       *Synth
	mixer       *beep.Mixer
	logger      *slog.Logger
	initialized bool
}

func NewSpeaker(synth *Synth, logger *slog.Logger) *Speaker {
	return &Speaker{
		synth:  synth,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.synth.rate, s.synth.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play never blocks on the audio device. Effects overlap.
func (s *Speaker) Play(effect mines.SoundEffect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	streamer := s.synth.Streamer(effect)
	if streamer == nil {
		s.logger.Warn("no sound for effect", slog.String("effect", effect.String()))
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	s.initialized = false
}

// Log stands in for a speaker when audio is off.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Play(effect mines.SoundEffect) {
	l.Logger.Debug("sound", slog.String("effect", effect.String()))
}
