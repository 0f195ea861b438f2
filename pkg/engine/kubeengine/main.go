/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package kubeengine

import (
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Engine wraps one kubeconfig-backed connection to the target cluster.
// Every stage after gke talks to the control plane through it.
type Engine struct {
	clusterConfigFile string

	clientSet kubernetes.Interface
}

// ResolveKubeconfigPath - explicit flag wins, then $KUBECONFIG, then the
// conventional home location gcloud get-credentials writes to.
func ResolveKubeconfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return clientcmd.RecommendedHomeFile
	}

	return filepath.Join(home, ".kube", "config")
}

func CreateEngine(kubeconfigPath string) (*Engine, error) {
	e := &Engine{
		clusterConfigFile: kubeconfigPath,
		clientSet:         nil,
	}

	clientSet, err := e.buildClientSet()
	if err != nil {
		return nil, merry.Prepend(err, "failed to create clientSet")
	}
	e.clientSet = clientSet

	llog.Infof("kubernetes engine init successfully on kubeconfig '%s'", kubeconfigPath)

	return e, nil
}

// CreateEngineWithClient - engine over a prebuilt client, used by tests
// with the fake clientset.
func CreateEngineWithClient(clientSet kubernetes.Interface) *Engine {
	return &Engine{
		clusterConfigFile: "",
		clientSet:         clientSet,
	}
}

func (e *Engine) GetKubeConfig() (*rest.Config, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", e.clusterConfigFile)
	if err != nil {
		return nil, merry.Prepend(err, "failed to build rest config from kubeconfig")
	}

	return restConfig, nil
}

func (e *Engine) buildClientSet() (*kubernetes.Clientset, error) {
	restConfig, err := e.GetKubeConfig()
	if err != nil {
		return nil, merry.Prepend(err, "failed to get kubeconfig for clientSet")
	}

	clientSet, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, merry.Prepend(err, "failed to create clientSet")
	}

	return clientSet, nil
}

func (e *Engine) ClientSet() kubernetes.Interface {
	return e.clientSet
}
