/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package commands

import (
	"os"
	"strings"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

// configFilePath is scanned out of os.Args before the settings struct is
// built, so that flag bindings land on top of the file values.
func configFilePath(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}

		if strings.HasPrefix(arg, "--config=") {
			if path := strings.TrimPrefix(arg, "--config="); path != "" {
				return path
			}
		}
	}

	return "voltdemo.yaml"
}

func Execute() {
	settings, err := config.LoadSettings(configFilePath(os.Args[1:]))
	if err != nil {
		llog.Fatalf("failed to load settings: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "voltdemo [deploy|gke|redpanda|voltdb|voltsp|loadgen]",
		Short: "voltdemo - stand up the VoltDB streaming analytics demo on GKE",
		Long: `
This program provisions the full streaming analytics demo stack: a GKE
cluster, a Redpanda broker with the ticker topic, a VoltDB cluster loaded
with the demo schema, the VoltSP pipeline wiring them together, and a load
generator job feeding tickers in. Every stage is idempotent and can be run
on its own against an existing cluster.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := llog.ParseLevel(settings.LogLevel)
			if err != nil {
				return merry.Wrap(err)
			}
			llog.SetLevel(level)

			return nil
		},
	}

	rootCmd.PersistentFlags().String("config",
		"voltdemo.yaml",
		"path to a YAML settings file")

	rootCmd.PersistentFlags().StringVarP(&settings.LogLevel,
		"log-level", "v",
		settings.LogLevel,
		"log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.PersistentFlags().StringVar(&settings.KubeconfigPath,
		"kubeconfig",
		settings.KubeconfigPath,
		"path to the kubeconfig, $KUBECONFIG or ~/.kube/config if not set")

	rootCmd.PersistentFlags().StringVar(&settings.WorkingDirectory,
		"dir",
		settings.WorkingDirectory,
		"working directory with license, ddl and jar inputs")

	rootCmd.PersistentFlags().BoolVar(&settings.NonInteractive,
		"non-interactive",
		settings.NonInteractive,
		"never prompt, take all parameters from flags and the settings file")

	rootCmd.PersistentFlags().StringVar(&settings.Registry.Username,
		"registry-user",
		settings.Registry.Username,
		"container registry username for image pull secrets")

	rootCmd.PersistentFlags().StringVar(&settings.Registry.Password,
		"registry-password",
		settings.Registry.Password,
		"container registry password for image pull secrets")

	rootCmd.AddCommand(newDeployCommand(settings),
		newGKECommand(settings),
		newRedpandaCommand(settings),
		newVoltDBCommand(settings),
		newVoltSPCommand(settings),
		newLoadgenCommand(settings),
		newVersionCommand())

	_ = rootCmd.Execute()
}
