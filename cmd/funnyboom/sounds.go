package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vancomm/funnyboom/internal/mines"
	"github.com/vancomm/funnyboom/internal/sound"
)

var effects = []mines.SoundEffect{
	mines.SoundExplosion,
	mines.SoundSpecialSquareDiscovered,
	mines.SoundVictory,
	mines.SoundCountdownBeep,
	mines.SoundFlagPlaced,
}

func exportSounds(dir string, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create %s: %w", dir, err)
	}

	synth := sound.NewSynth(0.6)
	for _, effect := range effects {
		path := filepath.Join(dir, effect.String()+".wav")
		if err := writeEffect(synth, effect, path); err != nil {
			return err
		}
		logger.Info("wrote sound", slog.String("path", path))
	}
	return nil
}

func writeEffect(synth *sound.Synth, effect mines.SoundEffect, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := synth.WriteWAV(f, effect); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
