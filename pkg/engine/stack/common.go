/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package stack

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"

	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
)

// Component - one deployable piece of the demo stack. Deploy is idempotent:
// resources that already exist are skipped, readiness is awaited either way.
type Component interface {
	Deploy(ctx context.Context) error
}

type commonComponent struct {
	e          *kubeengine.Engine
	settings   *config.Settings
	shellState *state.State
}

func (cc *commonComponent) logLevel() string {
	return cc.settings.LogLevel
}

// inputPath - relative chart inputs are taken from the working directory.
func (cc *commonComponent) inputPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cc.settings.WorkingDirectory, path)
}

// readInputFile - local chart inputs (license, schema, jars) must exist
// before anything gets mutated on the cluster.
func readInputFile(kind, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, merry.Prependf(err, "%s file not found at %s", kind, path)
	}

	return data, nil
}
