package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "voltsp", settings.GKE.ClusterName)
	assert.Equal(t, "asia-northeast1-b", settings.GKE.Zone)
	assert.Equal(t, 6, settings.GKE.NumNodes)
	assert.Equal(t, "redpanda-cluster", settings.Redpanda.ReleaseName)
	assert.Equal(t, "25.1.1", settings.Redpanda.ChartVersion)
	assert.Equal(t, 3, settings.Redpanda.Replicas)
	assert.Equal(t, "ticker-data", settings.Redpanda.TopicName)
	assert.Equal(t, "volt-vwap", settings.VoltDB.ClusterName)
	assert.Equal(t, 8, settings.VoltDB.SitesPerHost)
	assert.Equal(t, 0, settings.VoltDB.KFactor)
	assert.Equal(t, "pipeline1", settings.VoltSP.PipelineName)
	assert.Equal(t, "2000000000", settings.Loadgen.TotalOps)
	assert.Equal(t, "docker.io", settings.Registry.Server)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltdemo.yml")
	content := `
logLevel: debug
gke:
  projectId: my-project
  clusterName: demo
  zone: asia-northeast1-b
  clusterVersion: "1.32"
  numNodes: 3
  machineType: c2-standard-16
  diskSizeGb: 50
  diskType: pd-ssd
redpanda:
  namespace: streaming
  releaseName: redpanda-cluster
  chartVersion: 25.1.1
  replicas: 3
  topicName: ticker-data
  partitions: 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "my-project", settings.GKE.ProjectID)
	assert.Equal(t, 3, settings.GKE.NumNodes)
	assert.Equal(t, "streaming", settings.Redpanda.Namespace)

	// untouched sections keep their defaults
	assert.Equal(t, "volt-vwap", settings.VoltDB.ClusterName)
}

func TestLoadSettingsBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml"), 0o600))

	_, err := LoadSettings(path)
	require.Error(t, err)
}
