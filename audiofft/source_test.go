package audiofft_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucidforge/sbcoord/audiofft"
)

// writeTestWAV writes a minimal PCM16 mono WAV file containing a pure
// tone, long enough to cover several FFT windows.
func writeTestWAV(t *testing.T, sampleRate int, seconds float64) string {
	t.Helper()
	n := int(float64(sampleRate) * seconds)
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(1000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}

	dataSize := n * 2
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture wav: %v", err)
	}
	defer f.Close()

	write := func(v any) {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			t.Fatalf("failed writing wav fixture: %v", err)
		}
	}

	f.WriteString("RIFF")
	write(uint32(36 + dataSize))
	f.WriteString("WAVE")
	f.WriteString("fmt ")
	write(uint32(16))          // fmt chunk size
	write(uint16(1))           // PCM
	write(uint16(1))           // mono
	write(uint32(sampleRate))  // sample rate
	write(uint32(sampleRate * 2)) // byte rate
	write(uint16(2))           // block align
	write(uint16(16))          // bits per sample
	f.WriteString("data")
	write(uint32(dataSize))
	for _, s := range samples {
		write(s)
	}
	return path
}

func TestNewSource_DecodesWavAndReportsDuration(t *testing.T) {
	path := writeTestWAV(t, 44100, 1.0)
	src, err := audiofft.NewSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Duration() <= 0 {
		t.Fatalf("expected a positive duration, got %v", src.Duration())
	}
}

func TestGetFft_OutOfRangeIsError(t *testing.T) {
	path := writeTestWAV(t, 44100, 0.1)
	src, err := audiofft.NewSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := src.GetFft(src.Duration()+1, false); err == nil {
		t.Fatalf("expected an error for a time past Duration()")
	}
}

func TestGetFft_MonoReturnsOneRow(t *testing.T) {
	path := writeTestWAV(t, 44100, 1.0)
	src, err := audiofft.NewSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := src.GetFft(src.Duration()/2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for a mono downmix, got %d", len(rows))
	}
}

func TestGetFft_SplitChannelsReturnsTwoRows(t *testing.T) {
	path := writeTestWAV(t, 44100, 1.0)
	src, err := audiofft.NewSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := src.GetFft(src.Duration()/2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for split channels, got %d", len(rows))
	}
}

func TestNewSource_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := audiofft.NewSource(path); err == nil {
		t.Fatalf("expected an error for an unsupported extension")
	}
}
