/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// service.go handles lazy registry service initialisation.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the database and opens the shared service.
//
// Design: The service is expensive to create (opens DB, sets up WAL mode)
// and is shared across all commands. sync.Once guarantees exactly one
// initialisation per process.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/tdf/internal/log"
	"github.com/jpl-au/tdf/internal/registry"
	"github.com/jpl-au/tdf/internal/service"
)

// noStoreCommands lists commands that bypass automatic registry
// initialisation. These either work before a registry exists (init, guide,
// config, parse, build, version, db) or manage their own service lifecycle
// (serve).
var noStoreCommands = map[string]bool{
	"init":    true,
	"guide":   true,
	"config":  true,
	"parse":   true,
	"check":   true,
	"build":   true,
	"profile": true,
	"version": true,
	"serve":   true,
	"db":      true,
}

var (
	svc      service.Service
	initOnce sync.Once
	initErr  error
)

// initService creates the shared registry service.
func initService() error {
	initOnce.Do(func() {
		s, err := registry.New(DB())
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		svc = s

		// Set project identifier for audit logging
		log.SetProject(s.Dir())
	})
	return initErr
}

// Service returns the shared registry service, initialising it on first
// use. Commands outside noStoreCommands can rely on it being non-nil.
func Service() (service.Service, error) {
	if err := initService(); err != nil {
		return nil, err
	}
	return svc, nil
}
