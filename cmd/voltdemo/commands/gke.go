/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package commands

import (
	"context"

	llog "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/voltactivedata/voltdemo/internal/deployment"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

func newGKECommand(settings *config.Settings) *cobra.Command {
	gkeCmd := &cobra.Command{
		Use:   "gke",
		Short: "Provision the GKE cluster and fetch credentials",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployGKE(context.Background()); err != nil {
				llog.Fatalf("gke stage failed: %v", err)
			}
			llog.Infoln("gke stage finished successfully")
		},
	}

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.ProjectID,
		"project",
		settings.GKE.ProjectID,
		"GCP project id")

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.ClusterName,
		"cluster-name",
		settings.GKE.ClusterName,
		"name of the GKE cluster")

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.Zone,
		"zone",
		settings.GKE.Zone,
		"GCP zone for the cluster")

	gkeCmd.PersistentFlags().IntVar(&settings.GKE.NumNodes,
		"nodes",
		settings.GKE.NumNodes,
		"node count of the cluster")

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.MachineType,
		"machine-type",
		settings.GKE.MachineType,
		"GCE machine type for cluster nodes")

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.ClusterVersion,
		"cluster-version",
		settings.GKE.ClusterVersion,
		"kubernetes version of the cluster")

	gkeCmd.PersistentFlags().IntVar(&settings.GKE.DiskSizeGB,
		"disk-size",
		settings.GKE.DiskSizeGB,
		"boot disk size per node, GB")

	gkeCmd.PersistentFlags().StringVar(&settings.GKE.DiskType,
		"disk-type",
		settings.GKE.DiskType,
		"boot disk type per node")

	return gkeCmd
}
