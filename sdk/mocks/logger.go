// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"bytes"
	"io"
	"log/slog"
)

// NewMock returns a JSON slog logger that discards its output.
func NewMock() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// NewBufferedMock returns a debug level JSON slog logger together with the
// buffer it writes to.
func NewBufferedMock() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return l, buf
}
