/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltactivedata/voltdemo/internal/version"
)

var build version.BuildVersion

func UpdateBuildVersion(ver, commit, date string) {
	build = version.BuildVersion{
		Version: ver,
		Commit:  commit,
		Date:    date,
	}
}

func newVersionCommand() *cobra.Command {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the voltdemo version",
		Run: func(_ *cobra.Command, _ []string) {
			if short {
				fmt.Println(build.Version)
				return
			}
			fmt.Println(build)
		},
	}

	versionCmd.Flags().BoolVarP(
		&short, "short", "s", false,
		"print version number without any additional info")

	return versionCmd
}
