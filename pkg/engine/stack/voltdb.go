/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package stack

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/sethvargo/go-password/password"
	llog "github.com/sirupsen/logrus"
	goYaml "gopkg.in/yaml.v3"

	"github.com/voltactivedata/voltdemo/pkg/engine/kubeengine"
	"github.com/voltactivedata/voltdemo/pkg/stack/config"
	"github.com/voltactivedata/voltdemo/pkg/state"
	"github.com/voltactivedata/voltdemo/pkg/tools"
)

const (
	voltRepoName = "voltdb"
	voltRepoURL  = "https://voltdb.github.io/helm-charts"
	voltDBChart  = "voltdb/voltdb"

	// the chart ServiceAccounts reference this exact secret name
	voltDBRegistrySecret = "dockerio-registry"

	voltInstallTimeout = 20 * time.Minute

	// give the operator a moment to reconcile after install
	voltSettleSleep = 10 * time.Second

	generatedPasswordLength = 16
)

// VoltStatefulSetName - the VoltDBCluster CR and its StatefulSet are named
// <release>-voltdb-cluster.
func VoltStatefulSetName(clusterName string) string {
	return clusterName + "-voltdb-cluster"
}

type VoltDBCluster struct {
	commonComponent

	// ResolveUnhealthyRelease decides what to do when the Helm release is
	// present but its StatefulSet is gone or stuck: reinstall or abort.
	ResolveUnhealthyRelease func() (bool, error)
}

func CreateVoltDBCluster(
	e *kubeengine.Engine, settings *config.Settings, shellState *state.State,
) *VoltDBCluster {
	return &VoltDBCluster{
		commonComponent: commonComponent{
			e:          e,
			settings:   settings,
			shellState: shellState,
		},
		ResolveUnhealthyRelease: func() (bool, error) { return true, nil },
	}
}

// sanitizeValuesKey - set-file keys are derived from file names, the chart
// expects dots and dashes flattened to underscores.
func sanitizeValuesKey(fileName string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_")

	return replacer.Replace(fileName)
}

func voltDBValues(
	settings *config.VoltDBSettings, licenseXML, ddlSQL, classesJar []byte,
) (string, error) {
	values := map[string]interface{}{
		"global": map[string]interface{}{
			"voltdbVersion": settings.ProductVersion,
		},
		"cluster": map[string]interface{}{
			"clusterSpec": map[string]interface{}{
				"replicas": settings.Replicas,
			},
			"config": map[string]interface{}{
				"licenseXMLFile": string(licenseXML),
				"deployment": map[string]interface{}{
					"cluster": map[string]interface{}{
						"kfactor":      settings.KFactor,
						"sitesperhost": settings.SitesPerHost,
					},
					"users": []interface{}{
						map[string]interface{}{
							"name":     settings.AdminUsername,
							"password": settings.AdminPassword,
							"roles":    "administrator",
						},
					},
				},
				"schemas": map[string]interface{}{
					sanitizeValuesKey(filepath.Base(settings.DDLFile)): string(ddlSQL),
				},
				"classes": map[string]interface{}{
					sanitizeValuesKey(filepath.Base(settings.ClassesJar)): string(classesJar),
				},
			},
		},
		"security": map[string]interface{}{
			"internalHostAuth": map[string]interface{}{
				"enabled": true,
			},
		},
		"imagePullSecrets": []interface{}{
			map[string]interface{}{
				"name": voltDBRegistrySecret,
			},
		},
	}

	valuesBytes, err := goYaml.Marshal(&values)
	if err != nil {
		return "", merry.Prepend(err, "failed to serialize voltdb values")
	}

	return string(valuesBytes), nil
}

func (vc *VoltDBCluster) statefulSetHealthy(ctx context.Context) bool {
	volt := vc.settings.VoltDB
	name := VoltStatefulSetName(volt.ClusterName)

	err := vc.e.WaitStatefulSetReady(ctx, volt.Namespace, name, waitProbeTimeout)

	return err == nil
}

// waitProbeTimeout - a single short readiness probe, not a full wait.
const waitProbeTimeout = 15 * time.Second

func (vc *VoltDBCluster) Deploy(ctx context.Context) error {
	volt := &vc.settings.VoltDB

	if err := vc.e.EnsureNamespace(ctx, volt.Namespace); err != nil {
		return err
	}

	installNew := true

	exists, err := vc.e.ReleaseExists(volt.Namespace, volt.ClusterName, vc.logLevel())
	if err != nil {
		return err
	}

	if exists {
		if vc.statefulSetHealthy(ctx) {
			llog.Infof("VoltDB cluster '%s' is already healthy, skipping install",
				volt.ClusterName)

			installNew = false
		} else {
			llog.Warnf("Helm release '%s' exists but its StatefulSet is missing or unhealthy",
				volt.ClusterName)

			reinstall, err := vc.ResolveUnhealthyRelease()
			if err != nil {
				return err
			}
			if !reinstall {
				return merry.Errorf(
					"aborted: uninstall release '%s' manually and re-run", volt.ClusterName)
			}

			if err = tools.Retry("uninstall release "+volt.ClusterName,
				func() error {
					return vc.e.UninstallRelease(
						volt.Namespace, volt.ClusterName, vc.logLevel())
				},
				tools.RetryStandardRetryCount,
				tools.RetryStandardWaitingTime,
			); err != nil {
				llog.Warnf("uninstall of '%s' failed, trying reinstall anyway: %v",
					volt.ClusterName, err)
			}
		}
	}

	if installNew {
		if err = vc.install(ctx); err != nil {
			return err
		}

		llog.Infof("Sleeping %v to let the operator reconcile...", voltSettleSleep)
		time.Sleep(voltSettleSleep)
	}

	name := VoltStatefulSetName(volt.ClusterName)

	if err = vc.e.WaitStatefulSetExists(
		ctx, volt.Namespace, name, kubeengine.ObjectExistsTimeout,
	); err != nil {
		return err
	}

	if err = vc.e.WaitStatefulSetReady(
		ctx, volt.Namespace, name, kubeengine.StatefulSetReadyTimeout,
	); err != nil {
		return err
	}

	llog.Infoln("VoltDB Core cluster is ready")

	vc.shellState.VoltClusterName = volt.ClusterName
	vc.shellState.VoltNamespace = volt.Namespace

	vc.smokeCheck(name)

	vc.shellState.RecordStage("voltdb", volt.Namespace, volt.ClusterName, "ready")

	return nil
}

func (vc *VoltDBCluster) install(ctx context.Context) error {
	volt := &vc.settings.VoltDB

	secretExists, err := vc.e.SecretExists(ctx, volt.Namespace, voltDBRegistrySecret)
	if err != nil {
		return err
	}

	if secretExists {
		llog.Infof("Secret '%s' already exists in namespace '%s', skipping creation",
			voltDBRegistrySecret, volt.Namespace)
	} else if err = vc.e.CreateDockerRegistrySecret(
		ctx, voltDBRegistrySecret, volt.Namespace, &vc.settings.Registry,
	); err != nil {
		return err
	}

	licenseXML, err := readInputFile("VoltDB license", vc.inputPath(volt.LicenseFile))
	if err != nil {
		return err
	}

	ddlSQL, err := readInputFile("VoltDB DDL", vc.inputPath(volt.DDLFile))
	if err != nil {
		return err
	}

	classesJar, err := readInputFile("VoltDB application JAR", vc.inputPath(volt.ClassesJar))
	if err != nil {
		return err
	}

	if volt.AdminPassword == "" {
		generated, err := password.Generate(generatedPasswordLength, 4, 0, false, false)
		if err != nil {
			return merry.Prepend(err, "failed to generate admin password")
		}
		volt.AdminPassword = generated

		llog.Infof("Generated VoltDB password for user '%s': %s",
			volt.AdminUsername, volt.AdminPassword)
	}

	valuesYaml, err := voltDBValues(volt, licenseXML, ddlSQL, classesJar)
	if err != nil {
		return err
	}

	llog.Infoln("Installing VoltDB Core...")

	if err = vc.e.DeployChart(&kubeengine.InstallOptions{
		ChartName:      voltDBChart,
		ChartVersion:   "",
		ChartNamespace: volt.Namespace,
		ReleaseName:    volt.ClusterName,
		RepositoryURL:  voltRepoURL,
		RepositoryName: voltRepoName,
		ValuesYaml:     valuesYaml,
		Timeout:        voltInstallTimeout,
	}, vc.logLevel()); err != nil {
		return merry.Prepend(err, "failed to install voltdb chart")
	}

	return nil
}

// smokeCheck - insert a throwaway row through sqlcmd in pod 0. Failure is
// reported but does not fail the stage, readiness is the replica count.
func (vc *VoltDBCluster) smokeCheck(statefulSetName string) {
	volt := vc.settings.VoltDB

	llog.Infoln("Inserting a dummy record into the DUMMY table...")

	out, err := vc.e.ExecInPod(
		volt.Namespace, statefulSetName+"-0", "",
		[]string{"sqlcmd", "--query=insert into DUMMY values 'X';"})
	if err != nil {
		llog.Warnf("dummy record insertion failed, verify the cluster manually: %v", err)

		return
	}

	llog.Debugf("sqlcmd output: %s", strings.TrimSpace(out))
	llog.Infoln("Dummy record inserted")
}
