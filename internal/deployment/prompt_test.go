/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package deployment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterNonInteractive(t *testing.T) {
	p := &prompter{nonInteractive: true}

	value, err := p.askString("cluster name", "voltsp")
	require.NoError(t, err)
	assert.Equal(t, "voltsp", value)

	number, err := p.askInt("node count", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, number)

	confirmed, err := p.askConfirm("start the load generator", true)
	require.NoError(t, err)
	assert.True(t, confirmed)

	secret, err := p.askPassword("registry password", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)

	choice, err := p.askSelect("demo", []string{DemoVWAP, DemoVoter})
	require.NoError(t, err)
	assert.Equal(t, DemoVWAP, choice)
}

func TestPrompterNonInteractiveRequired(t *testing.T) {
	p := &prompter{nonInteractive: true}

	value, err := p.askRequiredString("project id", "my-project")
	require.NoError(t, err)
	assert.Equal(t, "my-project", value)

	_, err = p.askRequiredString("project id", "")
	require.Error(t, err)
}
