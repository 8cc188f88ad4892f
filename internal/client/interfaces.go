// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/client_mock.go -package=mock

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand in args and blocks until it is done.
	Run(ctx context.Context, args []string) error
}

// PasswordReader reads a secret without echoing it.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// Prompter asks the user to confirm destructive actions.
type Prompter interface {
	ConfirmDelete(ctx context.Context, contact models.ContactSnapshot) (bool, error)
}
