// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction.
//
// The launcher's post-launch liveness probe waits a bounded interval
// while polling the child. Production code uses Real(); tests use
// Fake(), which advances only when Advance is called, so the probe's
// deadline and poll interval can be driven deterministically:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	launcher, _ := broker.New(broker.Config{Clock: c, ...})
//	go launcher.Launch(ctx, request)
//	c.WaitForTimers(2)                // deadline and first poll registered
//	c.Advance(250 * time.Millisecond) // expire the liveness window
package clock
