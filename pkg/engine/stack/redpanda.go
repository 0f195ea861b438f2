/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package stack

import (
	"context"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	goYaml "gopkg.in/yaml.v3"

	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
)

const (
	redpandaRepoName = "redpanda"
	redpandaRepoURL  = "https://charts.redpanda.com/"
	redpandaChart    = "redpanda/redpanda"

	redpandaContainerName = "redpanda"
)

// Topic retention knobs for ticker-data, from the published demo.
const (
	topicCompression  = "lz4"
	topicSegmentBytes = "268435456"
	topicRetentionMs  = "12000000"
	topicCleanup      = "delete"
	topicReplicas     = 1
)

type RedpandaCluster struct {
	commonComponent
}

func CreateRedpandaCluster(
	e *kubeengine.Engine, settings *config.Settings, shellState *state.State,
) *RedpandaCluster {
	return &RedpandaCluster{
		commonComponent: commonComponent{
			e:          e,
			settings:   settings,
			shellState: shellState,
		},
	}
}

func redpandaValues(replicas int) (string, error) {
	values := map[string]interface{}{
		"statefulset": map[string]interface{}{
			"replicas": replicas,
		},
		"tls": map[string]interface{}{
			"enabled": false,
		},
	}

	valuesBytes, err := goYaml.Marshal(&values)
	if err != nil {
		return "", merry.Prepend(err, "failed to serialize redpanda values")
	}

	return string(valuesBytes), nil
}

func (rc *RedpandaCluster) Deploy(ctx context.Context) error {
	redpanda := rc.settings.Redpanda

	if err := rc.e.EnsureNamespace(ctx, redpanda.Namespace); err != nil {
		return err
	}

	exists, err := rc.e.ReleaseExists(redpanda.Namespace, redpanda.ReleaseName, rc.logLevel())
	if err != nil {
		return err
	}

	if exists {
		llog.Infof("Helm release '%s' already exists in namespace '%s', "+
			"waiting for existing cluster readiness", redpanda.ReleaseName, redpanda.Namespace)
	} else {
		valuesYaml, err := redpandaValues(redpanda.Replicas)
		if err != nil {
			return err
		}

		llog.Infoln("Installing Redpanda...")

		if err = rc.e.DeployChart(&kubeengine.InstallOptions{
			ChartName:      redpandaChart,
			ChartVersion:   redpanda.ChartVersion,
			ChartNamespace: redpanda.Namespace,
			ReleaseName:    redpanda.ReleaseName,
			RepositoryURL:  redpandaRepoURL,
			RepositoryName: redpandaRepoName,
			ValuesYaml:     valuesYaml,
			Timeout:        0,
		}, rc.logLevel()); err != nil {
			return merry.Prepend(err, "failed to install redpanda chart")
		}
	}

	// the chart names its statefulset after the release
	if err = rc.e.WaitStatefulSetExists(
		ctx, redpanda.Namespace, redpanda.ReleaseName, kubeengine.ObjectExistsTimeout,
	); err != nil {
		return err
	}

	if err = rc.e.WaitStatefulSetReady(
		ctx, redpanda.Namespace, redpanda.ReleaseName, kubeengine.DeploymentReadyTimeout,
	); err != nil {
		return err
	}

	if err = rc.e.WaitPodsReady(
		ctx, redpanda.Namespace,
		kubeengine.RedpandaPodSelector(redpanda.ReleaseName),
		redpanda.Replicas, kubeengine.PodsReadyTimeout,
	); err != nil {
		return err
	}

	llog.Infoln("Redpanda cluster is ready")

	rc.shellState.RedpandaRelease = redpanda.ReleaseName
	rc.shellState.RedpandaNamespace = redpanda.Namespace

	if err = rc.configureTopic(ctx); err != nil {
		return err
	}

	rc.shellState.RecordStage("redpanda", redpanda.Namespace, redpanda.ReleaseName, "ready")

	return nil
}

// topicListed - rpk prints a table, first column is the topic name.
func topicListed(rpkListOutput, topicName string) bool {
	for _, line := range strings.Split(rpkListOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == topicName {
			return true
		}
	}

	return false
}

func rpkCreateTopicArgs(topicName string, partitions int, brokerAddr string) []string {
	return []string{
		"rpk", "topic", "create", topicName,
		"--partitions", strconv.Itoa(partitions),
		"--replicas", strconv.Itoa(topicReplicas),
		"--brokers", brokerAddr,
	}
}

func rpkAlterTopicArgs(topicName, brokerAddr string) []string {
	return []string{
		"rpk", "topic", "alter-config", topicName,
		"--set", "compression.type=" + topicCompression,
		"--set", "segment.bytes=" + topicSegmentBytes,
		"--set", "retention.ms=" + topicRetentionMs,
		"--set", "cleanup.policy=" + topicCleanup,
		"--brokers", brokerAddr,
	}
}

func (rc *RedpandaCluster) configureTopic(ctx context.Context) error {
	redpanda := rc.settings.Redpanda

	llog.Infof("Creating and configuring topic '%s'...", redpanda.TopicName)

	podName, err := rc.e.FirstPodName(
		ctx, redpanda.Namespace, kubeengine.RedpandaPodSelector(redpanda.ReleaseName))
	if err != nil {
		return merry.Prepend(err, "could not determine redpanda pod for topic setup")
	}

	brokerAddr := rc.shellState.BrokerZeroAddr()

	listOutput, err := rc.e.ExecInPod(
		redpanda.Namespace, podName, redpandaContainerName,
		[]string{"rpk", "topic", "list"})
	if err != nil {
		return merry.Prepend(err, "failed to list topics")
	}

	if topicListed(listOutput, redpanda.TopicName) {
		llog.Infof("Topic '%s' already exists, skipping creation", redpanda.TopicName)
	} else {
		if _, err = rc.e.ExecInPod(
			redpanda.Namespace, podName, redpandaContainerName,
			rpkCreateTopicArgs(redpanda.TopicName, redpanda.Partitions, brokerAddr),
		); err != nil {
			return merry.Prependf(err, "failed to create topic '%s'", redpanda.TopicName)
		}
	}

	if _, err = rc.e.ExecInPod(
		redpanda.Namespace, podName, redpandaContainerName,
		rpkAlterTopicArgs(redpanda.TopicName, brokerAddr),
	); err != nil {
		return merry.Prependf(err, "failed to alter topic '%s' config", redpanda.TopicName)
	}

	llog.Infof("Topic '%s' configured successfully", redpanda.TopicName)

	return nil
}
