/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package gcloud

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/tools"
)

const (
	statusPollInterval = 30 * time.Second
	statusPollTimeout  = 15 * time.Minute
)

var errEmptyProject = merry.New("gcp project id is empty")

// Cluster drives the gcloud CLI for one GKE cluster. There is no GKE SDK in
// use here on purpose, the demo follows whatever gcloud the operator has
// authenticated already.
type Cluster struct {
	settings *config.GKESettings
}

func CreateCluster(settings *config.GKESettings) *Cluster {
	return &Cluster{
		settings: settings,
	}
}

func (c *Cluster) run(args ...string) (string, error) {
	llog.Debugf("launch command `gcloud %s`", strings.Join(args, " "))

	cmd := exec.Command("gcloud", args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), merry.Prependf(err,
			"gcloud %s failed with output `%s`", args[0], strings.TrimSpace(string(out)))
	}

	return string(out), nil
}

// SetProject - pin the active gcloud project before any cluster operation.
func (c *Cluster) SetProject() error {
	if c.settings.ProjectID == "" {
		return errEmptyProject
	}

	llog.Infof("Setting gcloud project to '%s'", c.settings.ProjectID)

	if _, err := c.run("config", "set", "project", c.settings.ProjectID); err != nil {
		return merry.Prepend(err, "failed to set gcloud project")
	}

	return nil
}

// Exists - check for the cluster in the configured project and zone.
func (c *Cluster) Exists() (bool, error) {
	llog.Infof("Checking if GKE cluster '%s' exists in project '%s' zone '%s'",
		c.settings.ClusterName, c.settings.ProjectID, c.settings.Zone)

	out, err := c.run(listClusterArgs(c.settings)...)
	if err != nil {
		return false, merry.Prepend(err, "failed to list gke clusters")
	}

	return strings.TrimSpace(out) == c.settings.ClusterName, nil
}

// Provision - create the cluster. The caller checks existence first.
func (c *Cluster) Provision() error {
	llog.Infof("Creating GKE cluster '%s', this may take a few minutes...",
		c.settings.ClusterName)

	if _, err := c.run(createClusterArgs(c.settings)...); err != nil {
		return merry.Prepend(err, "failed to create gke cluster")
	}

	return nil
}

// WaitRunning - poll `describe` until the control plane reports RUNNING.
func (c *Cluster) WaitRunning() error {
	llog.Infof("Waiting for GKE cluster '%s' to become RUNNING (timeout %v)",
		c.settings.ClusterName, statusPollTimeout)

	return tools.PollUntil(
		fmt.Sprintf("gke cluster %s running", c.settings.ClusterName),
		func() (bool, error) {
			out, err := c.run(describeClusterArgs(c.settings)...)
			if err != nil {
				return false, merry.Prepend(err, "describe cluster")
			}

			status := ParseClusterStatus([]byte(out))
			switch {
			case status == StatusRunning:
				llog.Infof("GKE cluster '%s' is now RUNNING", c.settings.ClusterName)

				return true, nil
			case IsTransitionalStatus(status):
				llog.Infof("  Cluster status: %s. Waiting for RUNNING...", status)
			default:
				llog.Warnf("  Cluster status: %s. Unexpected, retrying anyway", status)
			}

			return false, nil
		},
		statusPollInterval,
		statusPollTimeout,
	)
}

// FetchCredentials - write cluster credentials into the given kubeconfig.
func (c *Cluster) FetchCredentials(kubeconfigPath string) error {
	llog.Infoln("Configuring kubectl to connect to the GKE cluster...")

	cmd := exec.Command("gcloud", "container", "clusters", "get-credentials",
		c.settings.ClusterName,
		"--zone", c.settings.Zone,
		"--project", c.settings.ProjectID)
	if kubeconfigPath != "" {
		cmd.Env = append(os.Environ(), "KUBECONFIG="+kubeconfigPath)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return merry.Prependf(err,
			"failed to fetch gke credentials, output `%s`", strings.TrimSpace(string(out)))
	}

	return nil
}
