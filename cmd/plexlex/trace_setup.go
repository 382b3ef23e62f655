package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"plexlex/internal/errwrap"
	"plexlex/internal/trace"
)

// traceFlags are the persistent --trace* flags after parsing.
type traceFlags struct {
	output    string
	level     trace.Level
	mode      trace.StorageMode
	format    trace.Format
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var tf traceFlags
	var levelName, modeName, formatName string
	for _, read := range []func() error{
		func() (err error) { tf.output, err = flags.GetString("trace"); return },
		func() (err error) { levelName, err = flags.GetString("trace-level"); return },
		func() (err error) { modeName, err = flags.GetString("trace-mode"); return },
		func() (err error) { formatName, err = flags.GetString("trace-format"); return },
		func() (err error) { tf.ringSize, err = flags.GetInt("trace-ring-size"); return },
		func() (err error) { tf.heartbeat, err = flags.GetDuration("trace-heartbeat"); return },
	} {
		if err := read(); err != nil {
			return tf, errwrap.Wrapf(err, "trace flags")
		}
	}

	var err error
	if tf.level, err = trace.ParseLevel(levelName); err != nil {
		return tf, err
	}
	// a destination alone asks for phase-level events
	if tf.level == trace.LevelOff && tf.output != "" && !flags.Changed("trace-level") {
		tf.level = trace.LevelPhase
	}
	if tf.mode, err = trace.ParseMode(modeName); err != nil {
		return tf, err
	}
	if tf.format, err = trace.ParseFormat(formatName); err != nil {
		return tf, err
	}
	return tf, nil
}

// setupTracing installs the tracer selected by the flags into cmd's
// context and returns the function that shuts it down.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	if tf.level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      tf.level,
		Mode:       tf.mode,
		Format:     tf.format,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Heartbeat:  tf.heartbeat,
	})
	if err != nil {
		return nil, errwrap.Wrapf(err, "start tracer")
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	var hb *trace.Heartbeat
	if tf.heartbeat > 0 {
		hb = trace.StartHeartbeat(tracer, tf.heartbeat, trace.RuntimeProbe)
	}
	stderr := cmd.ErrOrStderr()
	return func() {
		if hb != nil {
			hb.Stop()
		}
		shutdownTracer(stderr, tracer, tf.format)
	}, nil
}

// shutdownTracer dumps a ring-only buffer, then flushes and closes. Errors
// are reported, not returned: the command result stands either way.
func shutdownTracer(stderr io.Writer, tracer trace.Tracer, format trace.Format) {
	if ring, ok := tracer.(*trace.RingTracer); ok {
		if format == trace.FormatAuto {
			format = trace.FormatText
		}
		if err := ring.Dump(stderr, format); err != nil {
			fmt.Fprintf(stderr, "trace: dump: %v\n", err)
		}
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close: %v\n", err)
	}
}
