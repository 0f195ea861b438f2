/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package gcloud

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

// Cluster lifecycle statuses as reported by `gcloud container clusters
// describe --format=json`.
const (
	StatusRunning      = "RUNNING"
	StatusProvisioning = "PROVISIONING"
	StatusReconciling  = "RECONCILING"
	StatusStopping     = "STOPPING"
)

// ParseClusterStatus - pull the status field out of describe output.
// gjson keeps us from modelling the whole (large) cluster document.
func ParseClusterStatus(describeJSON []byte) string {
	return gjson.ParseBytes(describeJSON).Get("status").String()
}

func IsTransitionalStatus(status string) bool {
	switch status {
	case StatusProvisioning, StatusReconciling, StatusStopping:
		return true
	}

	return false
}

func listClusterArgs(settings *config.GKESettings) []string {
	return []string{
		"container", "clusters", "list",
		"--project", settings.ProjectID,
		"--filter", fmt.Sprintf("name=%s AND zone=%s", settings.ClusterName, settings.Zone),
		"--format", "value(name)",
	}
}

func describeClusterArgs(settings *config.GKESettings) []string {
	return []string{
		"container", "clusters", "describe", settings.ClusterName,
		"--zone", settings.Zone,
		"--project", settings.ProjectID,
		"--format", "json",
	}
}

func createClusterArgs(settings *config.GKESettings) []string {
	return []string{
		"container", "clusters", "create", settings.ClusterName,
		"--project", settings.ProjectID,
		"--zone", settings.Zone,
		"--cluster-version", settings.ClusterVersion,
		"--num-nodes", strconv.Itoa(settings.NumNodes),
		"--machine-type", settings.MachineType,
		"--disk-size", strconv.Itoa(settings.DiskSizeGB),
		"--disk-type", settings.DiskType,
		"--enable-ip-alias",
		"--node-locations", settings.Zone,
	}
}
