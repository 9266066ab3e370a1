// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process runtime.
//
// It starts the connectivity probe and the background sync job, runs the
// terminal status view in the foreground and stops the workers on exit.
package client
