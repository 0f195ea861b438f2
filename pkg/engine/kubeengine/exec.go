/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package kubeengine

import (
	"bytes"
	"strings"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	v1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/scheme"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/tools/remotecommand"
)

// ExecInPod - run a command inside a pod container over SPDY and return its
// stdout. rpk and sqlcmd invocations go through here.
func (e *Engine) ExecInPod(
	namespace, podName, containerName string, command []string,
) (string, error) {
	restConfig, err := e.GetKubeConfig()
	if err != nil {
		return "", merry.Prepend(err, "failed to get kubeconfig for pod exec")
	}

	coreClient, err := corev1client.NewForConfig(restConfig)
	if err != nil {
		return "", merry.Prepend(err, "failed to get core client")
	}

	llog.Debugf("exec in pod '%s/%s': %s", namespace, podName, strings.Join(command, " "))

	req := coreClient.RESTClient().
		Post().
		Namespace(namespace).
		Resource("pods").
		Name(podName).
		SubResource("exec").
		VersionedParams(&v1.PodExecOptions{
			Container: containerName,
			Command:   command,
			Stdin:     false,
			Stdout:    true,
			Stderr:    true,
			TTY:       false,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(restConfig, "POST", req.URL())
	if err != nil {
		return "", merry.Prepend(err, "exec get")
	}

	var stdout, stderr bytes.Buffer

	if err = executor.Stream(remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
		Tty:    false,
	}); err != nil {
		return stdout.String(), merry.Prependf(err,
			"command exec failed, stderr: `%s`", stderr.String())
	}

	return stdout.String(), nil
}
