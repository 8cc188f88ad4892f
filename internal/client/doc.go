// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the myself command-line application.
//
// It wires the vault, unlock sessions, services, interactive prompts and
// the background session sweeper into a single process lifecycle and maps
// subcommands onto service calls.
package client
