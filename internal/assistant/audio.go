package assistant

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Speech synthesis output is raw PCM; the format is fixed, not negotiated.
const (
	SampleRate    = 24000
	Channels      = 1
	bitsPerSample = 16
)

// Clip is decoded audio ready to play.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// DecodePCM reads 16-bit little-endian samples. A trailing odd byte is
// dropped.
func DecodePCM(data []byte) *Clip {
	n := len(data) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return &Clip{Samples: samples, SampleRate: SampleRate, Channels: Channels}
}

// Duration is the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate <= 0 || c.Channels <= 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// WAVSize is the number of bytes WriteWAV produces.
func (c *Clip) WAVSize() int {
	return 44 + len(c.Samples)*2
}

// WriteWAV encodes the clip as a canonical PCM WAV file so a browser audio
// element can play it.
func (c *Clip) WriteWAV(w io.Writer) error {
	dataSize := uint32(len(c.Samples) * 2)
	blockAlign := uint16(c.Channels * bitsPerSample / 8)
	byteRate := uint32(c.SampleRate) * uint32(blockAlign)

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 36+dataSize)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, 1) // PCM
	header = binary.LittleEndian.AppendUint16(header, uint16(c.Channels))
	header = binary.LittleEndian.AppendUint32(header, uint32(c.SampleRate))
	header = binary.LittleEndian.AppendUint32(header, byteRate)
	header = binary.LittleEndian.AppendUint16(header, blockAlign)
	header = binary.LittleEndian.AppendUint16(header, bitsPerSample)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, dataSize)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	body := make([]byte, 0, dataSize)
	for _, s := range c.Samples {
		body = binary.LittleEndian.AppendUint16(body, uint16(s))
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	return nil
}
