/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package deployment

import (
	"os"

	"github.com/olekukonko/tablewriter"
)

func (d *Deployment) printSummary() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stage", "Namespace", "Release", "Status"})
	table.SetBorder(false)

	for _, result := range d.shellState.Completed {
		table.Append([]string{
			result.Component, result.Namespace, result.Release, result.Status,
		})
	}

	table.Render()
}
