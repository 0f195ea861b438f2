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

func newVoltDBCommand(settings *config.Settings) *cobra.Command {
	voltdbCmd := &cobra.Command{
		Use:   "voltdb",
		Short: "Install the VoltDB cluster with the demo schema",
		Run: func(_ *cobra.Command, _ []string) {
			d := deployment.CreateDeployment(settings)
			if err := d.DeployVoltDB(context.Background()); err != nil {
				llog.Fatalf("voltdb stage failed: %v", err)
			}
			llog.Infoln("voltdb stage finished successfully")
		},
	}

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.Namespace,
		"namespace",
		settings.VoltDB.Namespace,
		"namespace for the database cluster")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.ClusterName,
		"cluster-name",
		settings.VoltDB.ClusterName,
		"helm release name of the database cluster")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.ProductVersion,
		"product-version",
		settings.VoltDB.ProductVersion,
		"VoltDB product version to install")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.LicenseFile,
		"license",
		settings.VoltDB.LicenseFile,
		"path to the VoltDB license xml")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.DDLFile,
		"ddl",
		settings.VoltDB.DDLFile,
		"path to the demo schema ddl")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.ClassesJar,
		"classes",
		settings.VoltDB.ClassesJar,
		"path to the stored procedure jar")

	voltdbCmd.PersistentFlags().StringVar(&settings.VoltDB.AdminPassword,
		"admin-password",
		settings.VoltDB.AdminPassword,
		"database admin password, generated when empty")

	return voltdbCmd
}
