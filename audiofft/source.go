// Package audiofft implements the FFT audio source collaborator a
// GeneratorContext caches per absolute file path: it decodes an audio
// file with beep and answers Duration/Frequency/GetFft queries over
// windows of the decoded samples.
//
// beep supplies decoding and streaming; the transform itself is a
// hand-rolled radix-2 FFT over the decoded sample buffer rather than
// something beep provides.
package audiofft

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// windowSize is the number of samples fed to the FFT per query. It must
// be a power of two for the radix-2 transform below.
const windowSize = 1024

// Source is one fully decoded audio file.
type Source struct {
	format   beep.Format
	samples  [][2]float64
	duration time.Duration
}

// NewSource decodes path (wav or mp3, selected by extension) fully into
// memory and returns a queryable Source.
func NewSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofft: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("audiofft: unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("audiofft: decode %s: %w", path, err)
	}
	defer streamer.Close()

	samples := make([][2]float64, 0, streamer.Len())
	chunk := make([][2]float64, 4096)
	for {
		n, ok := streamer.Stream(chunk)
		if n > 0 {
			samples = append(samples, chunk[:n]...)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audiofft: stream %s: %w", path, err)
	}

	return &Source{
		format:   format,
		samples:  samples,
		duration: format.SampleRate.D(len(samples)),
	}, nil
}

// Duration returns the total decoded length.
func (s *Source) Duration() time.Duration { return s.duration }

// Frequency returns the decoded sample rate.
func (s *Source) Frequency() beep.SampleRate { return s.format.SampleRate }

// GetFft returns magnitude spectrum bins for a windowSize-sample window
// centered on t. When splitChannels is true, the result has two rows
// (left, right); otherwise one row from the mono downmix. An error is
// returned when t falls outside [0, Duration()).
func (s *Source) GetFft(t time.Duration, splitChannels bool) ([][]float64, error) {
	if t < 0 || t >= s.duration {
		return nil, fmt.Errorf("audiofft: time %s outside [0, %s)", t, s.duration)
	}

	center := s.format.SampleRate.N(t)
	start := center - windowSize/2
	if splitChannels {
		left := s.windowed(start, 0)
		right := s.windowed(start, 1)
		return [][]float64{magnitudes(left), magnitudes(right)}, nil
	}

	mono := make([]complex128, windowSize)
	for i := 0; i < windowSize; i++ {
		idx := start + i
		var v float64
		if idx >= 0 && idx < len(s.samples) {
			v = (s.samples[idx][0] + s.samples[idx][1]) / 2
		}
		mono[i] = complex(v*hann(i, windowSize), 0)
	}
	fft(mono)
	return [][]float64{magnitudes(mono)}, nil
}

// windowed extracts and Hann-windows one channel's samples starting at
// start (zero-padded outside the decoded buffer), runs the in-place FFT
// over them, and returns the resulting complex spectrum.
func (s *Source) windowed(start, channel int) []complex128 {
	out := make([]complex128, windowSize)
	for i := 0; i < windowSize; i++ {
		idx := start + i
		var v float64
		if idx >= 0 && idx < len(s.samples) {
			v = s.samples[idx][channel]
		}
		out[i] = complex(v*hann(i, windowSize), 0)
	}
	fft(out)
	return out
}

func hann(i, n int) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

// magnitudes returns the first half of the spectrum (the FFT of a
// real-valued signal is conjugate-symmetric, so the second half carries
// no additional information).
func magnitudes(bins []complex128) []float64 {
	out := make([]float64, len(bins)/2)
	for i := range out {
		out[i] = cmplx.Abs(bins[i])
	}
	return out
}

// fft runs an in-place iterative radix-2 Cooley-Tukey transform.
// len(a) must be a power of two.
func fft(a []complex128) {
	n := len(a)
	if n <= 1 {
		return
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wLen := cmplx.Exp(complex(0, angle))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := a[i+j]
				v := a[i+j+length/2] * w
				a[i+j] = u + v
				a[i+j+length/2] = u - v
				w *= wLen
			}
		}
	}
}
