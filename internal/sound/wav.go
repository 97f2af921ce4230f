package sound

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/wav"

	"github.com/vancomm/funnyboom/internal/mines"
)

// WriteWAV renders effect as a mono 16-bit WAV file.
func (s *Synth) WriteWAV(w io.WriteSeeker, effect mines.SoundEffect) error {
	streamer := s.Streamer(effect)
	if streamer == nil {
		return fmt.Errorf("no sound for effect %s", effect)
	}
	format := Format
	format.SampleRate = s.rate
	if err := wav.Encode(w, streamer, format); err != nil {
		return fmt.Errorf("unable to encode %s: %w", effect, err)
	}
	return nil
}
