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

func newRedpandaCommand(settings *config.Settings) *cobra.Command {
	redpandaCmd := &cobra.Command{
		Use:   "redpanda",
		Short: "Install Redpanda and create the ticker topic",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployRedpanda(context.Background()); err != nil {
				llog.Fatalf("redpanda stage failed: %v", err)
			}
			llog.Infoln("redpanda stage finished successfully")
		},
	}

	redpandaCmd.PersistentFlags().StringVar(&settings.Redpanda.Namespace,
		"namespace",
		settings.Redpanda.Namespace,
		"namespace for the broker cluster")

	redpandaCmd.PersistentFlags().StringVar(&settings.Redpanda.ReleaseName,
		"release",
		settings.Redpanda.ReleaseName,
		"helm release name of the broker cluster")

	redpandaCmd.PersistentFlags().IntVar(&settings.Redpanda.Replicas,
		"replicas",
		settings.Redpanda.Replicas,
		"broker count")

	redpandaCmd.PersistentFlags().StringVar(&settings.Redpanda.TopicName,
		"topic",
		settings.Redpanda.TopicName,
		"name of the ticker topic")

	redpandaCmd.PersistentFlags().IntVar(&settings.Redpanda.Partitions,
		"partitions",
		settings.Redpanda.Partitions,
		"partition count of the ticker topic")

	return redpandaCmd
}
