/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package deployment

import (
	"context"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"

	"github.com/voltactivedata/voltdemo/pkg/engine/gcloud"
	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/engine/stack"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
)

type Deployment struct {
	settings   *config.Settings
	shellState *state.State
	prompt     *prompter

	e *kubeengine.Engine
}

func CreateDeployment(settings *config.Settings) *Deployment {
	return &Deployment{
		settings: settings,
		shellState: &state.State{
			Settings: settings,
		},
		prompt: &prompter{nonInteractive: settings.NonInteractive},
	}
}

// prepareEngine builds the kubernetes client lazily, so that stages which
// run before a cluster exists (gke) do not need a kubeconfig.
func (d *Deployment) prepareEngine() error {
	if d.e != nil {
		return nil
	}

	kubeconfigPath := d.shellState.KubeconfigPath
	if kubeconfigPath == "" {
		kubeconfigPath = kubeengine.ResolveKubeconfigPath(d.settings.KubeconfigPath)
		d.shellState.KubeconfigPath = kubeconfigPath
	}

	e, err := kubeengine.CreateEngine(kubeconfigPath)
	if err != nil {
		return merry.Prepend(err, "failed to init kubernetes engine")
	}

	d.e = e

	return nil
}

// DeployAll runs the full stage chain for the selected demo.
func (d *Deployment) DeployAll(ctx context.Context) error {
	demo, err := d.prompt.askSelect("Which demo to deploy", []string{DemoVWAP, DemoVoter})
	if err != nil {
		return err
	}

	return d.runDemo(ctx, demo)
}

func (d *Deployment) runDemo(ctx context.Context, demo string) error {
	if demo == DemoVoter {
		llog.Infof("The '%s' demo is not implemented yet", DemoVoter)

		return nil
	}

	if err := d.DeployGKE(ctx); err != nil {
		return merry.Prepend(err, "gke stage failed")
	}

	if err := d.DeployRedpanda(ctx); err != nil {
		return merry.Prepend(err, "redpanda stage failed")
	}

	if err := d.DeployVoltDB(ctx); err != nil {
		return merry.Prepend(err, "voltdb stage failed")
	}

	if err := d.DeployVoltSP(ctx); err != nil {
		return merry.Prepend(err, "voltsp stage failed")
	}

	if err := d.DeployLoadgen(ctx); err != nil {
		return merry.Prepend(err, "loadgen stage failed")
	}

	d.printSummary()

	jobName := d.shellState.StageRelease("loadgen")
	if jobName == "" {
		jobName = "vwap-loadgen"
	}

	llog.Infof(deployedUsageHelpTemplate,
		d.shellState.KubeconfigPath,
		d.shellState.RedpandaNamespace,
		d.shellState.VoltNamespace,
		d.settings.Loadgen.Namespace, jobName)

	return nil
}

func (d *Deployment) DeployGKE(_ context.Context) error {
	gke := &d.settings.GKE

	var err error

	if gke.ProjectID, err = d.prompt.askRequiredString(
		"GCP project id", gke.ProjectID); err != nil {
		return err
	}

	if gke.ClusterName, err = d.prompt.askString(
		"Cluster name", gke.ClusterName); err != nil {
		return err
	}

	if gke.Zone, err = d.prompt.askString("Zone", gke.Zone); err != nil {
		return err
	}

	if gke.NumNodes, err = d.prompt.askInt("Node count", gke.NumNodes); err != nil {
		return err
	}

	if gke.ClusterVersion, err = d.prompt.askString(
		"Cluster version", gke.ClusterVersion); err != nil {
		return err
	}

	if gke.MachineType, err = d.prompt.askString(
		"Machine type", gke.MachineType); err != nil {
		return err
	}

	if gke.DiskSizeGB, err = d.prompt.askInt("Disk size (GB)", gke.DiskSizeGB); err != nil {
		return err
	}

	if gke.DiskType, err = d.prompt.askString("Disk type", gke.DiskType); err != nil {
		return err
	}

	cluster := gcloud.CreateCluster(gke)

	if err = cluster.SetProject(); err != nil {
		return err
	}

	exists, err := cluster.Exists()
	if err != nil {
		return err
	}

	if exists {
		llog.Infof("GKE cluster '%s' already exists, skipping creation", gke.ClusterName)

		proceed, err := d.prompt.askConfirm("Proceed with the existing cluster", true)
		if err != nil {
			return err
		}
		if !proceed {
			return merry.Errorf("aborted: cluster '%s' already exists", gke.ClusterName)
		}
	} else {
		if err = cluster.Provision(); err != nil {
			return err
		}
	}

	if err = cluster.WaitRunning(); err != nil {
		return err
	}

	kubeconfigPath := kubeengine.ResolveKubeconfigPath(d.settings.KubeconfigPath)

	if err = cluster.FetchCredentials(kubeconfigPath); err != nil {
		return err
	}

	d.shellState.KubeconfigPath = kubeconfigPath
	d.shellState.RecordStage("gke", gke.Zone, gke.ClusterName, "running")

	return nil
}

func (d *Deployment) DeployRedpanda(ctx context.Context) error {
	redpanda := &d.settings.Redpanda

	var err error

	if redpanda.Namespace, err = d.prompt.askString(
		"Redpanda namespace", redpanda.Namespace); err != nil {
		return err
	}

	if redpanda.ReleaseName, err = d.prompt.askString(
		"Redpanda release name", redpanda.ReleaseName); err != nil {
		return err
	}

	if redpanda.Replicas, err = d.prompt.askInt(
		"Redpanda broker count", redpanda.Replicas); err != nil {
		return err
	}

	if err = d.prepareEngine(); err != nil {
		return err
	}

	return stack.CreateRedpandaCluster(d.e, d.settings, d.shellState).Deploy(ctx)
}

func (d *Deployment) DeployVoltDB(ctx context.Context) error {
	volt := &d.settings.VoltDB
	registry := &d.settings.Registry

	var err error

	if registry.Username, err = d.prompt.askRequiredString(
		"Container registry username", registry.Username); err != nil {
		return err
	}

	if registry.Password, err = d.prompt.askPassword(
		"Container registry password", registry.Password); err != nil {
		return err
	}

	if volt.ProductVersion, err = d.prompt.askString(
		"VoltDB version", volt.ProductVersion); err != nil {
		return err
	}

	if volt.LicenseFile, err = d.prompt.askString(
		"VoltDB license file", volt.LicenseFile); err != nil {
		return err
	}

	if volt.AdminPassword, err = d.prompt.askPassword(
		"VoltDB admin password (empty to generate)", volt.AdminPassword); err != nil {
		return err
	}

	if err = d.prepareEngine(); err != nil {
		return err
	}

	voltCluster := stack.CreateVoltDBCluster(d.e, d.settings, d.shellState)
	voltCluster.ResolveUnhealthyRelease = func() (bool, error) {
		return d.prompt.askConfirm(
			"Release '"+volt.ClusterName+"' is unhealthy, uninstall and reinstall", true)
	}

	return voltCluster.Deploy(ctx)
}

func (d *Deployment) DeployVoltSP(ctx context.Context) error {
	voltsp := &d.settings.VoltSP

	var err error

	if voltsp.PipelineName, err = d.prompt.askString(
		"Pipeline name", voltsp.PipelineName); err != nil {
		return err
	}

	if voltsp.Namespace, err = d.prompt.askString(
		"Pipeline namespace (empty for the voltdb namespace)", voltsp.Namespace); err != nil {
		return err
	}

	if err = d.prepareEngine(); err != nil {
		return err
	}

	return stack.CreateVoltSPPipeline(d.e, d.settings, d.shellState).Deploy(ctx)
}

func (d *Deployment) DeployLoadgen(ctx context.Context) error {
	loadgen := &d.settings.Loadgen

	var err error

	if loadgen.Namespace, err = d.prompt.askString(
		"Load generator namespace", loadgen.Namespace); err != nil {
		return err
	}

	start, err := d.prompt.askConfirm("Start the load generator", true)
	if err != nil {
		return err
	}

	if !start {
		llog.Infoln("Load generator skipped")

		return nil
	}

	if err = d.prepareEngine(); err != nil {
		return err
	}

	return stack.CreateLoadGenerator(d.e, d.settings, d.shellState).Deploy(ctx)
}
