/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package deployment

const (
	// DemoVWAP streams ticker data through VoltSP into a VWAP schema.
	DemoVWAP = "vwap"
	// DemoVoter is the classic VoltDB sample, it skips the pipeline stages.
	DemoVoter = "voter"

	deployedUsageHelpTemplate = `
The demo stack is up.

To inspect it with kubectl in another console, set KUBECONFIG first:
"export KUBECONFIG=%s"

Useful entry points:
  kubectl get pods -n %s          # redpanda brokers
  kubectl get pods -n %s          # voltdb cluster and voltsp pipeline
  kubectl logs -n %s job/%s -f    # load generator output`
)
