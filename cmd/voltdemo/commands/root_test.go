/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "voltdemo.yaml", configFilePath(nil))
	assert.Equal(t, "voltdemo.yaml", configFilePath([]string{"deploy", "--non-interactive"}))
	assert.Equal(t, "other.yml",
		configFilePath([]string{"deploy", "--config", "other.yml", "--project", "p"}))
	assert.Equal(t, "other.yml", configFilePath([]string{"deploy", "--config=other.yml"}))
	assert.Equal(t, "voltdemo.yaml", configFilePath([]string{"deploy", "--config"}))
	assert.Equal(t, "voltdemo.yaml", configFilePath([]string{"deploy", "--config="}))
}

func TestStageCommandsCarryPromptFlagTwins(t *testing.T) {
	settings := config.DefaultSettings()

	gkeCmd := newGKECommand(settings)
	for _, name := range []string{
		"project", "cluster-name", "zone", "nodes",
		"machine-type", "cluster-version", "disk-size", "disk-type",
	} {
		assert.NotNil(t, gkeCmd.PersistentFlags().Lookup(name), name)
	}

	voltdbCmd := newVoltDBCommand(settings)
	for _, name := range []string{
		"namespace", "cluster-name", "product-version",
		"license", "ddl", "classes", "admin-password",
	} {
		assert.NotNil(t, voltdbCmd.PersistentFlags().Lookup(name), name)
	}

	redpandaCmd := newRedpandaCommand(settings)
	for _, name := range []string{"namespace", "release", "replicas", "topic", "partitions"} {
		assert.NotNil(t, redpandaCmd.PersistentFlags().Lookup(name), name)
	}
}
