package audio

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// ExportWAV renders every one-shot in Library to dir as 16-bit stereo WAV files and returns the
// paths written. Noise voices use a fixed seed so repeated exports are identical.
func ExportWAV(dir string, rate beep.SampleRate, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	rng := rand.New(rand.NewSource(1))

	var paths []string
	for _, s := range Library() {
		path := filepath.Join(dir, s.Name+".wav")
		if err := writeWAV(path, build(s, rate, rng), format); err != nil {
			return paths, err
		}
		logger.Info("exported sound", zap.String("name", s.Name), zap.String("path", path),
			zap.Duration("duration", s.Duration))
		paths = append(paths, path)
	}
	return paths, nil
}

func writeWAV(path string, s beep.Streamer, format beep.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
