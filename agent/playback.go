// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"time"

	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/codec"
	"github.com/hackvr/hackvr/lib/wire"
)

// PlaybackCommand is one scripted inbound command: cmd[0] is the
// command name and cmd[1:] its arguments, sent after waiting delay
// seconds since the previous entry. Grounded on hackvr-py's
// tools/playback_server.py PlaybackCommand dataclass, adapted here as
// a CBOR-encodable fixture for deterministic test replay rather than
// a live-socket recording tool's wire format.
type PlaybackCommand struct {
	Cmd   []string `cbor:"cmd"`
	Delay float64  `cbor:"delay"`
}

// DecodeScript decodes a CBOR-encoded playback script produced by
// EncodeScript.
func DecodeScript(data []byte) ([]PlaybackCommand, error) {
	var script []PlaybackCommand
	if err := codec.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	return script, nil
}

// EncodeScript is the inverse of DecodeScript.
func EncodeScript(script []PlaybackCommand) ([]byte, error) {
	return codec.Marshal(script)
}

// LogFunc receives one send event per played command, mirroring the
// [name] delta direction cmd args line format of
// _PlaybackConnection._log in the source tool, minus the timestamp
// prefix (the caller's LogFunc can format that from clk itself).
type LogFunc func(cmd string, args []string)

// Play feeds script through a synchronously, advancing clk by each
// entry's delay before encoding and delivering it. clk must be the
// same clock a was constructed with, so transition playback and
// scripted delay stay on one deterministic timeline; a nil clk skips
// advancing (every delay is treated as zero).
//
// Play stops and returns the first framing error Feed reports. Per
// -command protocol errors are not returned; they surface through the
// Agent's own Events.OnDropped, exactly as they would outside
// playback.
func Play(a *Agent, clk *clock.FakeClock, script []PlaybackCommand, log LogFunc) error {
	for _, entry := range script {
		if entry.Delay > 0 && clk != nil {
			clk.Advance(time.Duration(entry.Delay * float64(time.Second)))
		}
		if len(entry.Cmd) == 0 {
			continue
		}
		cmd, args := entry.Cmd[0], entry.Cmd[1:]
		frame, err := wire.Encode(cmd, args...)
		if err != nil {
			continue // malformed fixture entry; not a framing violation
		}
		if log != nil {
			log(cmd, args)
		}
		if err := a.Feed(frame); err != nil {
			return err
		}
	}
	return nil
}
