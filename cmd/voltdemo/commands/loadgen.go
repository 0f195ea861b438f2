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

func newLoadgenCommand(settings *config.Settings) *cobra.Command {
	loadgenCmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Launch the load generator job against a deployed stack",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployLoadgen(context.Background()); err != nil {
				llog.Fatalf("loadgen stage failed: %v", err)
			}
			llog.Infoln("loadgen stage finished successfully")
		},
	}

	loadgenCmd.PersistentFlags().StringVar(&settings.Loadgen.Namespace,
		"namespace",
		settings.Loadgen.Namespace,
		"namespace for the load generator job")

	loadgenCmd.PersistentFlags().StringVar(&settings.Loadgen.JobManifest,
		"job-manifest",
		settings.Loadgen.JobManifest,
		"path to a custom job manifest, a built-in job is used if not set")

	loadgenCmd.PersistentFlags().StringVar(&settings.Loadgen.TPS,
		"tps",
		settings.Loadgen.TPS,
		"target transactions per second per client")

	loadgenCmd.PersistentFlags().StringVar(&settings.Loadgen.TotalOps,
		"total-operations",
		settings.Loadgen.TotalOps,
		"total operations before the generator stops")

	return loadgenCmd
}
