// Package sink formats recovered UAT frames as hexadecimal text records and
// writes them to an output stream, flushing after every record so a
// consumer piping this program's stdout sees each frame as soon as it is
// decoded.
package sink

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/zaitcev/dump978/internal/demod"
)

// Writer formats demod.Frame values as single-line hex records:
// a direction marker ('-' for downlink, '+' for uplink), the frame's data
// bytes in hex, an optional ";rs=N" when Reed-Solomon corrected at least one
// symbol, and a trailing ";".
type Writer struct {
	out    *bufio.Writer
	logger *logrus.Logger

	framesWritten uint64
}

// NewWriter wraps w (typically os.Stdout) for record output.
func NewWriter(w io.Writer, logger *logrus.Logger) *Writer {
	return &Writer{out: bufio.NewWriter(w), logger: logger}
}

// Write formats and emits one frame, flushing immediately afterward.
func (wr *Writer) Write(frame demod.Frame) error {
	dir := byte('-')
	if frame.Uplink {
		dir = '+'
	}

	if err := wr.out.WriteByte(dir); err != nil {
		return fmt.Errorf("sink: write direction marker: %w", err)
	}
	if _, err := wr.out.WriteString(hex.EncodeToString(frame.Data)); err != nil {
		return fmt.Errorf("sink: write frame data: %w", err)
	}
	if frame.RSErrors != 0 {
		if _, err := fmt.Fprintf(wr.out, ";rs=%d", frame.RSErrors); err != nil {
			return fmt.Errorf("sink: write rs annotation: %w", err)
		}
	}
	if _, err := wr.out.WriteString(";\n"); err != nil {
		return fmt.Errorf("sink: write record terminator: %w", err)
	}
	if err := wr.out.Flush(); err != nil {
		return fmt.Errorf("sink: flush: %w", err)
	}

	wr.framesWritten++
	if wr.logger != nil && wr.framesWritten%1000 == 0 {
		wr.logger.WithFields(logrus.Fields{
			"frames_written": wr.framesWritten,
		}).Debug("sink: record throughput")
	}

	return nil
}
