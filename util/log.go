// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"

	"golang.org/x/term"
)

const outputLimit = 1024
const flushChr = 0x0a // \n

// Output represents a line buffered diagnostic output, lines are written
// either to W or, when set, to Term colored by outcome.
type Output struct {
	// W is the plain output destination
	W io.Writer
	// Term is the colored output destination
	Term *term.Terminal

	buf bytes.Buffer
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (n int, err error) {
	for _, c := range p {
		o.buf.WriteByte(c)

		if c == flushChr || o.buf.Len() > outputLimit {
			if err = o.flush(); err != nil {
				return
			}
		}

		n++
	}

	return
}

func (o *Output) flush() (err error) {
	defer o.buf.Reset()

	if o.Term == nil {
		_, err = o.W.Write(o.buf.Bytes())
		return
	}

	color := o.Term.Escape.Green

	if failure(o.buf.Bytes()) {
		color = o.Term.Escape.Red
	}

	o.Term.Write(color)
	_, err = o.Term.Write(o.buf.Bytes())
	o.Term.Write(o.Term.Escape.Reset)

	return
}

func failure(line []byte) bool {
	line = bytes.ToLower(line)
	return bytes.Contains(line, []byte("fail")) || bytes.Contains(line, []byte("never"))
}
