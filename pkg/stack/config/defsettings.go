package config

import (
	llog "github.com/sirupsen/logrus"
)

// GKESettings - parameters of the managed kubernetes cluster stage.
type GKESettings struct {
	ProjectID      string `yaml:"projectId"`
	ClusterName    string `yaml:"clusterName"`
	Zone           string `yaml:"zone"`
	ClusterVersion string `yaml:"clusterVersion"`
	NumNodes       int    `yaml:"numNodes"`
	MachineType    string `yaml:"machineType"`
	DiskSizeGB     int    `yaml:"diskSizeGb"`
	DiskType       string `yaml:"diskType"`
}

type RedpandaSettings struct {
	Namespace    string `yaml:"namespace"`
	ReleaseName  string `yaml:"releaseName"`
	ChartVersion string `yaml:"chartVersion"`
	Replicas     int    `yaml:"replicas"`
	TopicName    string `yaml:"topicName"`
	Partitions   int    `yaml:"partitions"`
}

type VoltDBSettings struct {
	Namespace      string `yaml:"namespace"`
	ClusterName    string `yaml:"clusterName"`
	ProductVersion string `yaml:"productVersion"`
	LicenseFile    string `yaml:"licenseFile"`
	DDLFile        string `yaml:"ddlFile"`
	ClassesJar     string `yaml:"classesJar"`
	SitesPerHost   int    `yaml:"sitesPerHost"`
	KFactor        int    `yaml:"kfactor"`
	Replicas       int    `yaml:"replicas"`

	// AdminPassword is generated when left empty.
	AdminUsername string `yaml:"adminUsername"`
	AdminPassword string `yaml:"adminPassword"`
}

type VoltSPSettings struct {
	Namespace    string `yaml:"namespace"`
	PipelineName string `yaml:"pipelineName"`
	LicenseFile  string `yaml:"licenseFile"`
	PipelineJar  string `yaml:"pipelineJar"`
}

type LoadgenSettings struct {
	Namespace    string `yaml:"namespace"`
	JobManifest  string `yaml:"jobManifest"`
	TotalOps     string `yaml:"totalOperations"`
	Tickers      string `yaml:"uniqueTickers"`
	NumClients   string `yaml:"numClients"`
	TPS          string `yaml:"tps"`
	SkipSetting  string `yaml:"skipSetting"`
}

type RegistrySettings struct {
	Server   string `yaml:"server"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

type Settings struct {
	LogLevel         string `yaml:"logLevel"`
	WorkingDirectory string `yaml:"workingDirectory"`
	KubeconfigPath   string `yaml:"kubeconfig"`

	// NonInteractive skips every prompt and takes defaults/flags as given.
	NonInteractive bool `yaml:"nonInteractive"`

	GKE      GKESettings      `yaml:"gke"`
	Redpanda RedpandaSettings `yaml:"redpanda"`
	VoltDB   VoltDBSettings   `yaml:"voltdb"`
	VoltSP   VoltSPSettings   `yaml:"voltsp"`
	Loadgen  LoadgenSettings  `yaml:"loadgen"`
	Registry RegistrySettings `yaml:"registry"`
}

// DefaultSettings - defaults match the published demo walkthrough.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:         llog.InfoLevel.String(),
		WorkingDirectory: ".",
		KubeconfigPath:   "",
		NonInteractive:   false,
		GKE: GKESettings{
			ProjectID:      "",
			ClusterName:    "voltsp",
			Zone:           "asia-northeast1-b",
			ClusterVersion: "1.32",
			NumNodes:       6,
			MachineType:    "c2-standard-16",
			DiskSizeGB:     50,
			DiskType:       "pd-ssd",
		},
		Redpanda: RedpandaSettings{
			Namespace:    "default",
			ReleaseName:  "redpanda-cluster",
			ChartVersion: "25.1.1",
			Replicas:     3,
			TopicName:    "ticker-data",
			Partitions:   15,
		},
		VoltDB: VoltDBSettings{
			Namespace:      "voltdb",
			ClusterName:    "volt-vwap",
			ProductVersion: "13.3.6",
			LicenseFile:    "license/license.xml",
			DDLFile:        "ddl/vwap_ddl.sql",
			ClassesJar:     "jars/vwap_demo.jar",
			SitesPerHost:   8,
			KFactor:        0,
			Replicas:       1,
			AdminUsername:  "voltadmin",
			AdminPassword:  "",
		},
		VoltSP: VoltSPSettings{
			Namespace:    "",
			PipelineName: "pipeline1",
			LicenseFile:  "license/license.xml",
			PipelineJar:  "jars/vwap-demo-1.0-SNAPSHOT-voltsp-kafka-reader-stream.jar",
		},
		Loadgen: LoadgenSettings{
			Namespace:   "voltsp",
			JobManifest: "",
			TotalOps:    "2000000000",
			Tickers:     "200",
			NumClients:  "1",
			TPS:         "2",
			SkipSetting: "0",
		},
		Registry: RegistrySettings{
			Server:   "docker.io",
			Username: "",
			Password: "",
			Email:    "",
		},
	}
}
