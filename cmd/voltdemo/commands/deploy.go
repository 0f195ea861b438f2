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

func newDeployCommand(settings *config.Settings) *cobra.Command {
	deployCmd := &cobra.Command{
		Use:     "deploy",
		Aliases: []string{"dep"},
		Short:   "Deploy the full demo stack",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployAll(context.Background()); err != nil {
				llog.Fatalf("deploy failed: %v", err)
			}
			llog.Infoln("deploy finished successfully")
		},
	}

	deployCmd.PersistentFlags().StringVar(&settings.GKE.ProjectID,
		"project",
		settings.GKE.ProjectID,
		"GCP project id")

	return deployCmd
}
