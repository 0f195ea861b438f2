/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package kubeengine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	batchv1 "k8s.io/api/batch/v1"
	v1 "k8s.io/api/core/v1"
	k8s_errors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sYaml "sigs.k8s.io/yaml"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

// EnsureNamespace - create the namespace unless it is already there.
func (e *Engine) EnsureNamespace(ctx context.Context, name string) error {
	_, err := e.clientSet.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		llog.Infof("Namespace '%s' already exists", name)

		return nil
	}

	if !k8s_errors.IsNotFound(err) {
		return merry.Prependf(err, "failed to check namespace '%s'", name)
	}

	namespace := &v1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}

	if _, err = e.clientSet.CoreV1().Namespaces().Create(
		ctx, namespace, metav1.CreateOptions{},
	); err != nil {
		if k8s_errors.IsAlreadyExists(err) {
			return nil
		}

		return merry.Prependf(err, "failed to create namespace '%s'", name)
	}

	llog.Infof("Namespace '%s' created", name)

	return nil
}

func (e *Engine) SecretExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := e.clientSet.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return true, nil
	}

	if k8s_errors.IsNotFound(err) {
		return false, nil
	}

	return false, merry.Prependf(err, "failed to check secret '%s/%s'", namespace, name)
}

type dockerConfigJSON struct {
	Auths map[string]dockerConfigEntry `json:"auths"`
}

type dockerConfigEntry struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Auth     string `json:"auth"`
}

// DockerRegistrySecret - build a kubernetes.io/dockerconfigjson secret the
// way `kubectl create secret docker-registry` does.
func DockerRegistrySecret(
	name, namespace string, registry *config.RegistrySettings,
) (*v1.Secret, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(registry.Username + ":" + registry.Password))

	dockerConfig := dockerConfigJSON{
		Auths: map[string]dockerConfigEntry{
			registry.Server: {
				Username: registry.Username,
				Password: registry.Password,
				Email:    registry.Email,
				Auth:     auth,
			},
		},
	}

	configBytes, err := json.Marshal(&dockerConfig)
	if err != nil {
		return nil, merry.Prepend(err, "failed to serialize docker config")
	}

	return &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Type: v1.SecretTypeDockerConfigJson,
		Data: map[string][]byte{
			v1.DockerConfigJsonKey: configBytes,
		},
	}, nil
}

func (e *Engine) CreateDockerRegistrySecret(
	ctx context.Context, name, namespace string, registry *config.RegistrySettings,
) error {
	secret, err := DockerRegistrySecret(name, namespace, registry)
	if err != nil {
		return err
	}

	if _, err = e.clientSet.CoreV1().Secrets(namespace).Create(
		ctx, secret, metav1.CreateOptions{},
	); err != nil {
		return merry.Prependf(err, "failed to create secret '%s/%s'", namespace, name)
	}

	llog.Infof("Docker registry secret '%s' created in namespace '%s'", name, namespace)

	return nil
}

// ApplyConfigMap - create-or-update.
func (e *Engine) ApplyConfigMap(ctx context.Context, configMap *v1.ConfigMap) error {
	maps := e.clientSet.CoreV1().ConfigMaps(configMap.Namespace)

	_, err := maps.Create(ctx, configMap, metav1.CreateOptions{})
	if err == nil {
		llog.Infof("ConfigMap '%s/%s' created", configMap.Namespace, configMap.Name)

		return nil
	}

	if !k8s_errors.IsAlreadyExists(err) {
		return merry.Prependf(err, "failed to create configmap '%s'", configMap.Name)
	}

	if _, err = maps.Update(ctx, configMap, metav1.UpdateOptions{}); err != nil {
		return merry.Prependf(err, "failed to update configmap '%s'", configMap.Name)
	}

	llog.Infof("ConfigMap '%s/%s' updated", configMap.Namespace, configMap.Name)

	return nil
}

// LoadJobManifest - read a Job from a YAML manifest on disk.
func LoadJobManifest(manifestPath string) (*batchv1.Job, error) {
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, merry.Prependf(err, "failed to read job manifest '%s'", manifestPath)
	}

	var job batchv1.Job
	if err = k8sYaml.Unmarshal(manifestBytes, &job); err != nil {
		return nil, merry.Prepend(err, "failed to unmarshal job manifest")
	}

	if job.Name == "" {
		return nil, merry.Errorf("job manifest '%s' has no metadata.name", manifestPath)
	}

	return &job, nil
}

func (e *Engine) JobExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := e.clientSet.BatchV1().Jobs(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return true, nil
	}

	if k8s_errors.IsNotFound(err) {
		return false, nil
	}

	return false, merry.Prependf(err, "failed to get job '%s/%s'", namespace, name)
}

func (e *Engine) ApplyJob(ctx context.Context, job *batchv1.Job) error {
	if _, err := e.clientSet.BatchV1().Jobs(job.Namespace).Create(
		ctx, job, metav1.CreateOptions{},
	); err != nil {
		if k8s_errors.IsAlreadyExists(err) {
			llog.Infof("Job '%s/%s' already exists, skipping", job.Namespace, job.Name)

			return nil
		}

		return merry.Prependf(err, "failed to create job '%s'", job.Name)
	}

	llog.Infof("Job '%s/%s' applied", job.Namespace, job.Name)

	return nil
}

// FindNamespaceByService - scan services across all namespaces, the loadgen
// stage discovers where redpanda and voltdb landed when run standalone.
func (e *Engine) FindNamespaceByService(ctx context.Context, serviceName string) (string, error) {
	services, err := e.clientSet.CoreV1().Services(metav1.NamespaceAll).List(
		ctx, metav1.ListOptions{})
	if err != nil {
		return "", merry.Prepend(err, "failed to list services")
	}

	for i := range services.Items {
		if services.Items[i].Name == serviceName {
			return services.Items[i].Namespace, nil
		}
	}

	return "", merry.Errorf("could not find namespace for service '%s'", serviceName)
}

// FirstPodName - name of the first running pod matching the selector.
func (e *Engine) FirstPodName(ctx context.Context, namespace, labelSelector string) (string, error) {
	pods, err := e.clientSet.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return "", merry.Prepend(err, "failed to list pods")
	}

	if len(pods.Items) == 0 {
		return "", merry.Errorf("no pods found for selector '%s' in namespace '%s'",
			labelSelector, namespace)
	}

	return pods.Items[0].Name, nil
}

func podIsReady(pod *v1.Pod) bool {
	if pod.Status.Phase != v1.PodRunning {
		return false
	}

	for _, condition := range pod.Status.Conditions {
		if condition.Type == v1.PodReady && condition.Status == v1.ConditionTrue {
			return true
		}
	}

	return false
}

// RedpandaPodSelector - the chart labels broker pods with instance and name.
func RedpandaPodSelector(releaseName string) string {
	return fmt.Sprintf("app.kubernetes.io/instance=%s,app.kubernetes.io/name=redpanda",
		releaseName)
}
