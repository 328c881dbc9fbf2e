package touch

import (
	"fmt"
	"io"
)

// SGR extended mouse mode button codes.
const (
	sgrButtonLeft    = 0
	sgrMotionLeft    = 32 // motion flag (32) + left button
	sgrPressSuffix   = 'M'
	sgrReleaseSuffix = 'm'
)

// FormatSGR encodes an event as an xterm SGR extended mouse sequence:
// ESC [ < Cb ; Cx ; Cy M for press and motion, lowercase m for release.
// Event coordinates are 0-indexed device pixels, passed through unscaled;
// SGR coordinates are 1-indexed, so both axes are shifted by one.
func FormatSGR(ev Event) (string, error) {
	if ev.X < 0 || ev.Y < 0 {
		return "", fmt.Errorf("cannot encode %v: negative coordinates", ev)
	}
	var (
		button int
		suffix byte
	)
	switch ev.Kind {
	case EventPress:
		button, suffix = sgrButtonLeft, sgrPressSuffix
	case EventMove:
		button, suffix = sgrMotionLeft, sgrPressSuffix
	case EventRelease:
		button, suffix = sgrButtonLeft, sgrReleaseSuffix
	default:
		return "", fmt.Errorf("cannot encode %v: unknown event kind", ev)
	}
	return fmt.Sprintf("\x1b[<%d;%d;%d%c", button, ev.X+1, ev.Y+1, suffix), nil
}

// SGRSink writes events to a terminal as SGR mouse sequences. It is the
// Sink for a shell running inside a pseudo-terminal with mouse reporting
// enabled.
type SGRSink struct {
	w io.StringWriter
}

// NewSGRSink returns a Sink writing to w.
func NewSGRSink(w io.StringWriter) *SGRSink {
	return &SGRSink{w: w}
}

// Inject implements Sink.
func (s *SGRSink) Inject(ev Event) error {
	seq, err := FormatSGR(ev)
	if err != nil {
		return err
	}
	if _, err := s.w.WriteString(seq); err != nil {
		return fmt.Errorf("failed to send mouse %s: %w", ev.Kind, err)
	}
	return nil
}
