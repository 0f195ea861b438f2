/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package kubeengine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ansel1/merry"
	helmclient "github.com/mittwald/go-helm-client"
	llog "github.com/sirupsen/logrus"
	"helm.sh/helm/v3/pkg/repo"
	"helm.sh/helm/v3/pkg/storage/driver"
)

type InstallOptions struct {
	ChartName      string
	ChartVersion   string
	ChartNamespace string
	ReleaseName    string
	RepositoryURL  string
	RepositoryName string
	ValuesYaml     string
	Timeout        time.Duration
}

func (e *Engine) helmClient(namespace, logLevel string) (helmclient.Client, error) {
	var debug bool

	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		debug = true
	case "info", "warn", "error":
		debug = false
	}

	kubeConfig, err := os.ReadFile(e.clusterConfigFile)
	if err != nil {
		return nil, merry.Prepend(err, "failed to read kubeconfig file")
	}

	options := &helmclient.KubeConfClientOptions{ //nolint
		Options: &helmclient.Options{ //nolint
			Namespace: namespace,
			Debug:     debug,
		},
		KubeConfig: kubeConfig,
	}

	client, err := helmclient.NewClientFromKubeConf(options)
	if err != nil {
		return nil, merry.Prepend(err, "Error then creating helm client")
	}

	return client, nil
}

// ReleaseExists - the idempotence check before every chart install.
func (e *Engine) ReleaseExists(namespace, releaseName, logLevel string) (bool, error) {
	client, err := e.helmClient(namespace, logLevel)
	if err != nil {
		return false, err
	}

	if _, err = client.GetRelease(releaseName); err != nil {
		if errors.Is(err, driver.ErrReleaseNotFound) {
			return false, nil
		}

		return false, merry.Prependf(err, "failed to get status of release '%s'", releaseName)
	}

	return true, nil
}

// UninstallRelease - recovery path for a release whose workload is gone.
func (e *Engine) UninstallRelease(namespace, releaseName, logLevel string) error {
	client, err := e.helmClient(namespace, logLevel)
	if err != nil {
		return err
	}

	if err = client.UninstallReleaseByName(releaseName); err != nil {
		return merry.Prependf(err, "failed to uninstall release '%s'", releaseName)
	}

	llog.Infof("Helm release '%s' uninstalled", releaseName)

	return nil
}

func (e *Engine) DeployChart(installOptions *InstallOptions, logLevel string) error {
	client, err := e.helmClient(installOptions.ChartNamespace, logLevel)
	if err != nil {
		return err
	}

	chartRepo := repo.Entry{ //nolint
		Name: installOptions.RepositoryName,
		URL:  installOptions.RepositoryURL,
	}

	// AddOrUpdateChartRepo tolerates a repo that is already registered.
	if err = client.AddOrUpdateChartRepo(chartRepo); err != nil {
		return merry.Prependf(err, "Error then adding %s helm repository",
			installOptions.RepositoryName)
	}

	if installOptions.Timeout == 0 {
		installOptions.Timeout = time.Minute * 5 //nolint
	}

	chartSpec := helmclient.ChartSpec{ //nolint
		ReleaseName: installOptions.ReleaseName,
		ChartName:   installOptions.ChartName,
		Version:     installOptions.ChartVersion,
		Namespace:   installOptions.ChartNamespace,
		ValuesYaml:  installOptions.ValuesYaml,
		Timeout:     installOptions.Timeout,
		UpgradeCRDs: true,
		MaxHistory:  5, //nolint
	}

	if _, err = client.InstallOrUpgradeChart(context.Background(), &chartSpec, nil); err != nil {
		return merry.Prepend(
			err,
			fmt.Sprintf("Error then upgrading/installing %s release", installOptions.ReleaseName),
		)
	}

	llog.Infof("Helm chart '%s' deploy: success", installOptions.ChartName)

	return nil
}
