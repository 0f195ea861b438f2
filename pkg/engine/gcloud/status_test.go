package gcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

func testSettings() *config.GKESettings {
	settings := config.DefaultSettings().GKE
	settings.ProjectID = "demo-project"

	return &settings
}

func TestParseClusterStatus(t *testing.T) {
	describe := []byte(`{
		"name": "voltsp",
		"location": "asia-northeast1-b",
		"currentNodeCount": 6,
		"status": "RUNNING"
	}`)

	assert.Equal(t, StatusRunning, ParseClusterStatus(describe))
	assert.Equal(t, "", ParseClusterStatus([]byte(`{"name": "voltsp"}`)))
	assert.Equal(t, "", ParseClusterStatus([]byte("not json at all")))
}

func TestIsTransitionalStatus(t *testing.T) {
	assert.True(t, IsTransitionalStatus(StatusProvisioning))
	assert.True(t, IsTransitionalStatus(StatusReconciling))
	assert.True(t, IsTransitionalStatus(StatusStopping))
	assert.False(t, IsTransitionalStatus(StatusRunning))
	assert.False(t, IsTransitionalStatus("ERROR"))
}

func TestListClusterArgs(t *testing.T) {
	args := listClusterArgs(testSettings())

	assert.Contains(t, args, "list")
	assert.Contains(t, args, "name=voltsp AND zone=asia-northeast1-b")
	assert.Contains(t, args, "demo-project")
}

func TestCreateClusterArgs(t *testing.T) {
	args := createClusterArgs(testSettings())

	assert.Equal(t, []string{
		"container", "clusters", "create", "voltsp",
		"--project", "demo-project",
		"--zone", "asia-northeast1-b",
		"--cluster-version", "1.32",
		"--num-nodes", "6",
		"--machine-type", "c2-standard-16",
		"--disk-size", "50",
		"--disk-type", "pd-ssd",
		"--enable-ip-alias",
		"--node-locations", "asia-northeast1-b",
	}, args)
}

func TestDescribeClusterArgs(t *testing.T) {
	args := describeClusterArgs(testSettings())

	assert.Contains(t, args, "describe")
	assert.Contains(t, args, "voltsp")
	assert.Contains(t, args, "json")
}

func TestSetProjectEmpty(t *testing.T) {
	settings := testSettings()
	settings.ProjectID = ""

	err := CreateCluster(settings).SetProject()
	assert.Error(t, err)
}
