// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the client's terminal status view: connectivity, the
// sync status banner, pass progress and the pending, failed and conflict
// counters. It also lets the user trigger a pass and settle held-back
// conflicts.
package tui
