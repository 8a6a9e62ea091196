// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

type rw struct {
	bytes.Buffer
}

func (rw) Read(_ []byte) (int, error) {
	return 0, nil
}

func TestOutputLineBuffered(t *testing.T) {
	var buf bytes.Buffer
	o := &Output{W: &buf}

	n, err := o.Write([]byte("Detected accrued"))
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Zero(t, buf.Len())

	_, err = o.Write([]byte(" bus error\nCleared"))
	require.NoError(t, err)
	require.Equal(t, "Detected accrued bus error\n", buf.String())
}

func TestOutputLimit(t *testing.T) {
	var buf bytes.Buffer
	o := &Output{W: &buf}

	_, err := o.Write([]byte(strings.Repeat("x", outputLimit+1)))
	require.NoError(t, err)
	require.Equal(t, outputLimit+1, buf.Len())
}

func TestOutputTerm(t *testing.T) {
	c := &rw{}
	tt := term.NewTerminal(c, "")
	o := &Output{Term: tt}

	_, err := o.Write([]byte("Cleared accrued bus error\n"))
	require.NoError(t, err)

	out := c.String()
	require.Contains(t, out, string(tt.Escape.Green)+"Cleared accrued bus error")
	require.Contains(t, out, string(tt.Escape.Reset))

	c.Reset()

	_, err = o.Write([]byte("Failed to clear accrued bus error event\n"))
	require.NoError(t, err)
	require.Contains(t, c.String(), string(tt.Escape.Red)+"Failed to clear")
}
