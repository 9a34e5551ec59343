package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/zaitcev/dump978/internal/demod"
	"github.com/zaitcev/dump978/internal/phase"
	"github.com/zaitcev/dump978/internal/sink"
)

// Application owns the demodulator's construction and its single decode
// loop. Unlike the teacher's RTL-SDR-driven Application, there is no
// goroutine fan-out here: the hot path is read, convert, process, advance,
// repeat, ending at end-of-stream with nothing left to cancel.
type Application struct {
	config Config
	logger *logrus.Logger

	table     *phase.Table
	codecs    *demod.Codecs
	processor *demod.Processor
}

// NewApplication creates an Application, building the phase table and the
// three Reed-Solomon codecs up front so the decode loop never rebuilds them.
func NewApplication(config Config) *Application {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	table := phase.NewTable()
	codecs := demod.NewCodecs()

	return &Application{
		config:    config,
		logger:    logger,
		table:     table,
		codecs:    codecs,
		processor: demod.NewProcessor(codecs, logger),
	}
}

// Start runs the application: either it prints the version banner, or it
// reads stdin to end-of-stream through the decode loop. It returns a
// non-zero-exit-worthy error only for the one fatal path, a stdin read
// failure that isn't plain end-of-stream.
func (a *Application) Start() error {
	if a.config.ShowVersion {
		ShowVersion()
		return nil
	}

	a.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting UAT demodulator")

	if err := a.run(os.Stdin, os.Stdout); err != nil {
		a.logger.WithError(err).Error("demodulator stopped")
		return err
	}

	a.logger.Info("end of stream, shutting down")
	return nil
}

// run drives the decode loop against r, writing recovered frames to w.
func (a *Application) run(r io.Reader, w io.Writer) error {
	intake := demod.NewIntake(a.table)
	out := sink.NewWriter(w, a.logger)

	var framesOut int
	for {
		phiWindow, offset, err := intake.Fill(r)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("app: reading sample stream: %w", err)
		}

		consumed := a.processor.Process(phiWindow, offset, func(frame demod.Frame) {
			if werr := out.Write(frame); werr != nil {
				a.logger.WithError(werr).Warn("failed to write decoded frame")
				return
			}
			framesOut++
		})
		intake.Advance(consumed)

		if errors.Is(err, io.EOF) {
			break
		}
	}

	syncCandidates, adsbFrames, uplinkFrames, rsErrorsTotal := a.processor.Stats()
	a.logger.WithFields(logrus.Fields{
		"sync_candidates": syncCandidates,
		"adsb_frames":     adsbFrames,
		"uplink_frames":   uplinkFrames,
		"rs_corrections":  rsErrorsTotal,
		"frames_written":  framesOut,
	}).Info("demodulation summary")

	return nil
}
