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

func newVoltSPCommand(settings *config.Settings) *cobra.Command {
	voltspCmd := &cobra.Command{
		Use:   "voltsp",
		Short: "Install the VoltSP pipeline between the broker and the database",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployVoltSP(context.Background()); err != nil {
				llog.Fatalf("voltsp stage failed: %v", err)
			}
			llog.Infoln("voltsp stage finished successfully")
		},
	}

	voltspCmd.PersistentFlags().StringVar(&settings.VoltSP.Namespace,
		"namespace",
		settings.VoltSP.Namespace,
		"namespace for the pipeline, the voltdb namespace if not set")

	voltspCmd.PersistentFlags().StringVar(&settings.VoltSP.PipelineName,
		"pipeline",
		settings.VoltSP.PipelineName,
		"helm release name of the pipeline")

	voltspCmd.PersistentFlags().StringVar(&settings.VoltSP.LicenseFile,
		"license",
		settings.VoltSP.LicenseFile,
		"path to the VoltSP license xml")

	voltspCmd.PersistentFlags().StringVar(&settings.VoltSP.PipelineJar,
		"pipeline-jar",
		settings.VoltSP.PipelineJar,
		"path to the pipeline application jar")

	return voltspCmd
}
