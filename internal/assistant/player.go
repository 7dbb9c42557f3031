package assistant

import (
	"context"
	"io"
)

// WAVPlayer "plays" a clip by writing it as a WAV file, either to an HTTP
// response the browser plays or to a file on disk.
type WAVPlayer struct {
	W io.Writer
	// Before runs once the clip is decoded and before any byte is written,
	// e.g. to set response headers.
	Before func(clip *Clip)
}

func (p WAVPlayer) Play(ctx context.Context, clip *Clip) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Before != nil {
		p.Before(clip)
	}
	return clip.WriteWAV(p.W)
}
