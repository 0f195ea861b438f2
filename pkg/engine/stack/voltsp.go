/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package stack

import (
	"context"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	goYaml "gopkg.in/yaml.v3"

	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
)

const (
	voltStreamsChart = "voltdb/volt-streams"

	voltSPRegistrySecret = "voltsp-docker-registry-secret"

	pipelineClassName = "com.voltactivedata.vwapdemo.voltsp.ReadFromKafkaAndSendToVoltTickers"
	sinkProcedureName = "ReportTickSessionAnchor"
	consumerGroupID   = "1"
)

// PipelineDeploymentName - volt-streams names its Deployment after the
// release with a chart suffix.
func PipelineDeploymentName(pipelineName string) string {
	return pipelineName + "-volt-streams"
}

type VoltSPPipeline struct {
	commonComponent
}

func CreateVoltSPPipeline(
	e *kubeengine.Engine, settings *config.Settings, shellState *state.State,
) *VoltSPPipeline {
	return &VoltSPPipeline{
		commonComponent: commonComponent{
			e:          e,
			settings:   settings,
			shellState: shellState,
		},
	}
}

func voltSPValues(
	topicName, kafkaBootstrapAddr, voltClientAddr string, licenseXML, pipelineJar []byte,
) (string, error) {
	resources := map[string]interface{}{
		"cpu":    2,
		"memory": "2G",
	}

	values := map[string]interface{}{
		"resources": map[string]interface{}{
			"limits":   resources,
			"requests": resources,
		},
		"streaming": map[string]interface{}{
			"licenseXMLFile": string(licenseXML),
			"voltapps":       string(pipelineJar),
			"pipeline": map[string]interface{}{
				"className": pipelineClassName,
				"configuration": map[string]interface{}{
					"sink": map[string]interface{}{
						"voltdb-procedure": map[string]interface{}{
							"servers":       voltClientAddr,
							"procedureName": sinkProcedureName,
						},
					},
					"source": map[string]interface{}{
						"kafka": map[string]interface{}{
							"topicNames":       topicName,
							"bootstrapServers": kafkaBootstrapAddr,
							"groupId":          consumerGroupID,
						},
					},
				},
			},
		},
		"imagePullSecrets": []interface{}{
			map[string]interface{}{
				"name": voltSPRegistrySecret,
			},
		},
	}

	valuesBytes, err := goYaml.Marshal(&values)
	if err != nil {
		return "", merry.Prepend(err, "failed to serialize voltsp values")
	}

	return string(valuesBytes), nil
}

func (vp *VoltSPPipeline) Deploy(ctx context.Context) error {
	voltsp := &vp.settings.VoltSP

	// the pipeline defaults into whatever namespace VoltDB landed in
	if voltsp.Namespace == "" {
		voltsp.Namespace = vp.shellState.VoltNamespace
	}

	if err := vp.e.EnsureNamespace(ctx, voltsp.Namespace); err != nil {
		return err
	}

	secretExists, err := vp.e.SecretExists(ctx, voltsp.Namespace, voltSPRegistrySecret)
	if err != nil {
		return err
	}

	if secretExists {
		llog.Infof("Secret '%s' already exists in namespace '%s', skipping creation",
			voltSPRegistrySecret, voltsp.Namespace)
	} else if err = vp.e.CreateDockerRegistrySecret(
		ctx, voltSPRegistrySecret, voltsp.Namespace, &vp.settings.Registry,
	); err != nil {
		return err
	}

	exists, err := vp.e.ReleaseExists(voltsp.Namespace, voltsp.PipelineName, vp.logLevel())
	if err != nil {
		return err
	}

	if exists {
		llog.Infof("VoltSP release '%s' already exists in namespace '%s', skipping install",
			voltsp.PipelineName, voltsp.Namespace)
	} else {
		licenseXML, err := readInputFile("VoltSP license", vp.inputPath(voltsp.LicenseFile))
		if err != nil {
			return err
		}

		pipelineJar, err := readInputFile(
			"VoltSP pipeline JAR", vp.inputPath(voltsp.PipelineJar))
		if err != nil {
			return err
		}

		kafkaAddr := vp.shellState.KafkaBootstrapAddr()
		voltAddr := vp.shellState.VoltClientAddr()

		llog.Infof("  Generated Kafka bootstrapServers: %s", kafkaAddr)
		llog.Infof("  Generated VoltDB sink servers: %s", voltAddr)

		valuesYaml, err := voltSPValues(
			vp.settings.Redpanda.TopicName, kafkaAddr, voltAddr, licenseXML, pipelineJar)
		if err != nil {
			return err
		}

		llog.Infoln("Installing VoltSP pipeline...")

		if err = vp.e.DeployChart(&kubeengine.InstallOptions{
			ChartName:      voltStreamsChart,
			ChartVersion:   "",
			ChartNamespace: voltsp.Namespace,
			ReleaseName:    voltsp.PipelineName,
			RepositoryURL:  voltRepoURL,
			RepositoryName: voltRepoName,
			ValuesYaml:     valuesYaml,
			Timeout:        0,
		}, vp.logLevel()); err != nil {
			return merry.Prepend(err, "failed to install volt-streams chart")
		}
	}

	if err = vp.e.WaitDeploymentReady(
		ctx, voltsp.Namespace,
		PipelineDeploymentName(voltsp.PipelineName),
		kubeengine.DeploymentReadyTimeout,
	); err != nil {
		return err
	}

	llog.Infoln("VoltSP pipeline is ready")

	vp.shellState.VoltSPNamespace = voltsp.Namespace
	vp.shellState.RecordStage("voltsp", voltsp.Namespace, voltsp.PipelineName, "ready")

	return nil
}
