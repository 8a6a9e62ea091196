// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package buserror

import (
	"strings"
)

// BEU cause codes
const (
	CAUSE_NONE            = 0
	CAUSE_INST_ECC_CORR   = 2
	CAUSE_INST_ECC_UNCORR = 3
	CAUSE_LOAD_STORE      = 5
	CAUSE_DATA_ECC_CORR   = 6
	CAUSE_DATA_ECC_UNCORR = 7
)

// Event represents a bitmask of bus error event kinds, each kind is
// represented by bit (1 << cause).
type Event uint64

// Bus error event kinds
const (
	EventNone          Event = 0
	EventInstECCCorr   Event = 1 << CAUSE_INST_ECC_CORR
	EventInstECCUncorr Event = 1 << CAUSE_INST_ECC_UNCORR
	EventLoadStore     Event = 1 << CAUSE_LOAD_STORE
	EventDataECCCorr   Event = 1 << CAUSE_DATA_ECC_CORR
	EventDataECCUncorr Event = 1 << CAUSE_DATA_ECC_UNCORR
	EventInvalid       Event = 1 << 8

	EventAll = EventInstECCCorr | EventInstECCUncorr | EventLoadStore | EventDataECCCorr | EventDataECCUncorr
	EventAny = EventAll
)

var eventNames = []struct {
	ev   Event
	name string
}{
	{EventInstECCCorr, "icache-ecc-correctable"},
	{EventInstECCUncorr, "icache-ecc-uncorrectable"},
	{EventLoadStore, "tilelink-load-store"},
	{EventDataECCCorr, "dcache-ecc-correctable"},
	{EventDataECCUncorr, "dcache-ecc-uncorrectable"},
	{EventInvalid, "invalid"},
}

// Classify converts a cause register value to its event kind.
func Classify(cause uint64) Event {
	if cause == CAUSE_NONE {
		return EventNone
	}

	if cause >= 64 {
		return EventInvalid
	}

	if ev := Event(1) << cause; ev&EventAll != 0 {
		return ev
	}

	return EventInvalid
}

func (ev Event) String() string {
	if ev == EventNone {
		return "none"
	}

	var names []string

	for _, e := range eventNames {
		if ev&e.ev != 0 {
			names = append(names, e.name)
			ev &^= e.ev
		}
	}

	if ev != 0 {
		names = append(names, "unknown")
	}

	return strings.Join(names, "|")
}
