/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package state

import (
	"fmt"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

// State travels through the stage chain, each stage fills in what the
// later ones need to find their peers.
type State struct {
	Settings *config.Settings

	// Filled by the gke stage once credentials are fetched.
	KubeconfigPath string

	// Hand-off identifiers between stages.
	RedpandaRelease   string
	RedpandaNamespace string
	VoltClusterName   string
	VoltNamespace     string
	VoltSPNamespace   string

	// Stage results for the final summary.
	Completed []StageResult
}

type StageResult struct {
	Component string
	Namespace string
	Release   string
	Status    string
}

func (s *State) RecordStage(component, namespace, release, status string) {
	s.Completed = append(s.Completed, StageResult{
		Component: component,
		Namespace: namespace,
		Release:   release,
		Status:    status,
	})
}

// StageRelease - release name a completed stage was recorded with, empty
// when the stage did not run.
func (s *State) StageRelease(component string) string {
	for _, result := range s.Completed {
		if result.Component == component {
			return result.Release
		}
	}

	return ""
}

// KafkaBootstrapAddr - in-cluster address of the redpanda broker service.
func (s *State) KafkaBootstrapAddr() string {
	return fmt.Sprintf("%s.%s.svc.cluster.local:9093", s.RedpandaRelease, s.RedpandaNamespace)
}

// VoltClientAddr - in-cluster address of the VoltDB client service.
func (s *State) VoltClientAddr() string {
	return fmt.Sprintf("%s-voltdb-cluster-client.%s.svc.cluster.local:21212",
		s.VoltClusterName, s.VoltNamespace)
}

// BrokerZeroAddr - direct address of broker pod 0, rpk needs a seed broker.
func (s *State) BrokerZeroAddr() string {
	return fmt.Sprintf("%s-0.%s.%s.svc.cluster.local:9093",
		s.RedpandaRelease, s.RedpandaRelease, s.RedpandaNamespace)
}
