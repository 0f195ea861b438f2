/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package stack

import (
	"context"

	"github.com/ansel1/merry"
	"github.com/google/uuid"
	llog "github.com/sirupsen/logrus"
	batchv1 "k8s.io/api/batch/v1"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
)

const (
	loadgenConfigMapName = "vwap-loadgen-config"
	loadgenJobName       = "vwap-loadgen"
	loadgenImage         = "voltactivedata/vwap-loadgen:latest"
)

type LoadGenerator struct {
	commonComponent
}

func CreateLoadGenerator(
	e *kubeengine.Engine, settings *config.Settings, shellState *state.State,
) *LoadGenerator {
	return &LoadGenerator{
		commonComponent: commonComponent{
			e:          e,
			settings:   settings,
			shellState: shellState,
		},
	}
}

func loadgenConfigMap(
	namespace string, settings *config.LoadgenSettings, voltAddr, kafkaAddr string,
) *v1.ConfigMap {
	return &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      loadgenConfigMapName,
			Namespace: namespace,
		},
		Data: map[string]string{
			"VOLTDB_SVC_ADDR":   voltAddr,
			"KAFKA_BROKER_ADDR": kafkaAddr,
			"TOTAL_OPERATIONS":  settings.TotalOps,
			"UNIQUE_TICKERS":    settings.Tickers,
			"NUM_CLIENTS":       settings.NumClients,
			"TPS":               settings.TPS,
			"SKIP_SOMETHING":    settings.SkipSetting,
		},
	}
}

func defaultLoadgenJob(namespace string) *batchv1.Job {
	var backoffLimit int32

	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      loadgenJobName,
			Namespace: namespace,
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: &backoffLimit,
			Template: v1.PodTemplateSpec{
				Spec: v1.PodSpec{
					RestartPolicy: v1.RestartPolicyNever,
					Containers: []v1.Container{
						{
							Name:  "loadgen",
							Image: loadgenImage,
							EnvFrom: []v1.EnvFromSource{
								{
									ConfigMapRef: &v1.ConfigMapEnvSource{
										LocalObjectReference: v1.LocalObjectReference{
											Name: loadgenConfigMapName,
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// rerunJobName - Job specs are immutable once created, a repeat run gets a
// fresh name instead of a conflict.
func rerunJobName(baseName string) string {
	return baseName + "-" + uuid.NewString()[:8]
}

// discoverNamespaces - when the stage runs standalone, the broker and
// database namespaces are not in the hand-off state and have to be found
// by scanning for their services.
func (lg *LoadGenerator) discoverNamespaces(ctx context.Context) error {
	if lg.shellState.RedpandaNamespace == "" {
		lg.shellState.RedpandaRelease = lg.settings.Redpanda.ReleaseName

		namespace, err := lg.e.FindNamespaceByService(ctx, lg.settings.Redpanda.ReleaseName)
		if err != nil {
			return merry.Prepend(err, "redpanda discovery failed")
		}

		llog.Infof("Discovered redpanda in namespace '%s'", namespace)
		lg.shellState.RedpandaNamespace = namespace
	}

	if lg.shellState.VoltNamespace == "" {
		lg.shellState.VoltClusterName = lg.settings.VoltDB.ClusterName

		clientService := VoltStatefulSetName(lg.settings.VoltDB.ClusterName) + "-client"

		namespace, err := lg.e.FindNamespaceByService(ctx, clientService)
		if err != nil {
			return merry.Prepend(err, "voltdb discovery failed")
		}

		llog.Infof("Discovered voltdb in namespace '%s'", namespace)
		lg.shellState.VoltNamespace = namespace
	}

	return nil
}

func (lg *LoadGenerator) Deploy(ctx context.Context) error {
	loadgen := &lg.settings.Loadgen

	if err := lg.discoverNamespaces(ctx); err != nil {
		return err
	}

	if err := lg.e.EnsureNamespace(ctx, loadgen.Namespace); err != nil {
		return err
	}

	configMap := loadgenConfigMap(
		loadgen.Namespace, loadgen,
		lg.shellState.VoltClientAddr(), lg.shellState.KafkaBootstrapAddr())

	if err := lg.e.ApplyConfigMap(ctx, configMap); err != nil {
		return err
	}

	var (
		job *batchv1.Job
		err error
	)

	if loadgen.JobManifest != "" {
		if job, err = kubeengine.LoadJobManifest(lg.inputPath(loadgen.JobManifest)); err != nil {
			return err
		}

		job.Namespace = loadgen.Namespace
	} else {
		job = defaultLoadgenJob(loadgen.Namespace)
	}

	exists, err := lg.e.JobExists(ctx, job.Namespace, job.Name)
	if err != nil {
		return err
	}

	if exists {
		job.Name = rerunJobName(job.Name)
		llog.Infof("Previous load run found, launching as '%s'", job.Name)
	}

	if err = lg.e.ApplyJob(ctx, job); err != nil {
		return err
	}

	if err = lg.e.WaitJobStarted(
		ctx, job.Namespace, job.Name, kubeengine.ObjectExistsTimeout,
	); err != nil {
		return err
	}

	llog.Infoln("Load generator is running")

	lg.shellState.RecordStage("loadgen", loadgen.Namespace, job.Name, "running")

	return nil
}
