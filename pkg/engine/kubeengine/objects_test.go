package kubeengine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/voltactivedata/voltdemo/pkg/stack/config"
)

func TestEnsureNamespaceCreates(t *testing.T) {
	clientSet := fake.NewSimpleClientset()
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.EnsureNamespace(context.Background(), "voltdb"))

	namespace, err := clientSet.CoreV1().Namespaces().Get(
		context.Background(), "voltdb", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "voltdb", namespace.Name)
}

func TestEnsureNamespaceIdempotent(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&v1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: "voltdb"},
	})
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.EnsureNamespace(context.Background(), "voltdb"))
	require.NoError(t, engine.EnsureNamespace(context.Background(), "voltdb"))
}

func TestSecretExists(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "dockerio-registry", Namespace: "voltdb"},
	})
	engine := CreateEngineWithClient(clientSet)

	exists, err := engine.SecretExists(context.Background(), "voltdb", "dockerio-registry")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = engine.SecretExists(context.Background(), "voltdb", "absent")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDockerRegistrySecret(t *testing.T) {
	registry := &config.RegistrySettings{
		Server:   "docker.io",
		Username: "demo",
		Password: "hunter2",
		Email:    "demo@example.com",
	}

	secret, err := DockerRegistrySecret("dockerio-registry", "voltdb", registry)
	require.NoError(t, err)

	assert.Equal(t, v1.SecretTypeDockerConfigJson, secret.Type)
	payload := string(secret.Data[v1.DockerConfigJsonKey])
	assert.Contains(t, payload, `"docker.io"`)
	assert.Contains(t, payload, `"username":"demo"`)
	// auth is base64("demo:hunter2")
	assert.Contains(t, payload, `"auth":"ZGVtbzpodW50ZXIy"`)
}

func TestCreateDockerRegistrySecret(t *testing.T) {
	clientSet := fake.NewSimpleClientset()
	engine := CreateEngineWithClient(clientSet)

	registry := &config.RegistrySettings{
		Server:   "docker.io",
		Username: "demo",
		Password: "hunter2",
	}

	require.NoError(t, engine.CreateDockerRegistrySecret(
		context.Background(), "voltsp-docker-registry-secret", "voltdb", registry))

	exists, err := engine.SecretExists(
		context.Background(), "voltdb", "voltsp-docker-registry-secret")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestApplyConfigMapCreateThenUpdate(t *testing.T) {
	clientSet := fake.NewSimpleClientset()
	engine := CreateEngineWithClient(clientSet)

	configMap := &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "vwap-loadgen-config", Namespace: "voltsp"},
		Data:       map[string]string{"TPS": "2"},
	}

	require.NoError(t, engine.ApplyConfigMap(context.Background(), configMap))

	configMap.Data["TPS"] = "5"
	require.NoError(t, engine.ApplyConfigMap(context.Background(), configMap))

	stored, err := clientSet.CoreV1().ConfigMaps("voltsp").Get(
		context.Background(), "vwap-loadgen-config", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "5", stored.Data["TPS"])
}

func TestFindNamespaceByService(t *testing.T) {
	clientSet := fake.NewSimpleClientset(
		&v1.Service{ObjectMeta: metav1.ObjectMeta{
			Name: "redpanda-cluster", Namespace: "streaming",
		}},
		&v1.Service{ObjectMeta: metav1.ObjectMeta{
			Name: "volt-vwap-voltdb-cluster-client", Namespace: "voltdb",
		}},
	)
	engine := CreateEngineWithClient(clientSet)

	namespace, err := engine.FindNamespaceByService(context.Background(), "redpanda-cluster")
	require.NoError(t, err)
	assert.Equal(t, "streaming", namespace)

	namespace, err = engine.FindNamespaceByService(
		context.Background(), "volt-vwap-voltdb-cluster-client")
	require.NoError(t, err)
	assert.Equal(t, "voltdb", namespace)

	_, err = engine.FindNamespaceByService(context.Background(), "nothing-here")
	require.Error(t, err)
}

func TestFirstPodName(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&v1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "redpanda-cluster-0",
			Namespace: "default",
			Labels: map[string]string{
				"app.kubernetes.io/instance": "redpanda-cluster",
				"app.kubernetes.io/name":     "redpanda",
			},
		},
	})
	engine := CreateEngineWithClient(clientSet)

	name, err := engine.FirstPodName(
		context.Background(), "default", RedpandaPodSelector("redpanda-cluster"))
	require.NoError(t, err)
	assert.Equal(t, "redpanda-cluster-0", name)

	_, err = engine.FirstPodName(context.Background(), "empty", RedpandaPodSelector("x"))
	require.Error(t, err)
}

func TestRedpandaPodSelector(t *testing.T) {
	assert.Equal(t,
		"app.kubernetes.io/instance=redpanda-cluster,app.kubernetes.io/name=redpanda",
		RedpandaPodSelector("redpanda-cluster"))
}

func TestLoadJobManifest(t *testing.T) {
	manifest := `
apiVersion: batch/v1
kind: Job
metadata:
  name: vwap-loadgen
  namespace: voltsp
spec:
  template:
    spec:
      restartPolicy: Never
      containers:
      - name: loadgen
        image: voltactivedata/vwap-loadgen:latest
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	job, err := LoadJobManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "vwap-loadgen", job.Name)
	assert.Equal(t, "voltsp", job.Namespace)
	require.Len(t, job.Spec.Template.Spec.Containers, 1)
	assert.Equal(t, "loadgen", job.Spec.Template.Spec.Containers[0].Name)
}

func TestLoadJobManifestMissing(t *testing.T) {
	_, err := LoadJobManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadJobManifestUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiVersion: batch/v1\nkind: Job\n"), 0o600))

	_, err := LoadJobManifest(path)
	require.Error(t, err)
}
