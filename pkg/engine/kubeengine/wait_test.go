package kubeengine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func int32ptr(v int32) *int32 { return &v }

func readyPod(name, namespace string, labels map[string]string) *v1.Pod {
	return &v1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Status: v1.PodStatus{
			Phase: v1.PodRunning,
			Conditions: []v1.PodCondition{
				{Type: v1.PodReady, Status: v1.ConditionTrue},
			},
		},
	}
}

func TestWaitStatefulSetExists(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "volt-vwap-voltdb-cluster", Namespace: "voltdb"},
	})
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.WaitStatefulSetExists(
		context.Background(), "voltdb", "volt-vwap-voltdb-cluster", time.Minute))
}

func TestWaitStatefulSetReady(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "redpanda-cluster", Namespace: "default"},
		Spec:       appsv1.StatefulSetSpec{Replicas: int32ptr(3)},
		Status:     appsv1.StatefulSetStatus{ReadyReplicas: 3},
	})
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.WaitStatefulSetReady(
		context.Background(), "default", "redpanda-cluster", time.Minute))
}

func TestWaitDeploymentReady(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "pipeline1-volt-streams", Namespace: "voltdb"},
		Spec:       appsv1.DeploymentSpec{Replicas: int32ptr(1)},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 1},
	})
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.WaitDeploymentReady(
		context.Background(), "voltdb", "pipeline1-volt-streams", time.Minute))
}

func TestWaitPodsReady(t *testing.T) {
	labels := map[string]string{
		"app.kubernetes.io/instance": "redpanda-cluster",
		"app.kubernetes.io/name":     "redpanda",
	}
	clientSet := fake.NewSimpleClientset(
		readyPod("redpanda-cluster-0", "default", labels),
		readyPod("redpanda-cluster-1", "default", labels),
		readyPod("redpanda-cluster-2", "default", labels),
	)
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.WaitPodsReady(
		context.Background(), "default",
		RedpandaPodSelector("redpanda-cluster"), 3, time.Minute))
}

func TestWaitPodsReadyCountsOnlyReady(t *testing.T) {
	labels := map[string]string{
		"app.kubernetes.io/instance": "redpanda-cluster",
		"app.kubernetes.io/name":     "redpanda",
	}
	pending := &v1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name: "redpanda-cluster-1", Namespace: "default", Labels: labels,
		},
		Status: v1.PodStatus{Phase: v1.PodPending},
	}
	clientSet := fake.NewSimpleClientset(
		readyPod("redpanda-cluster-0", "default", labels), pending)
	engine := CreateEngineWithClient(clientSet)

	// one ready pod satisfies an expectation of one, the pending pod does not count
	require.NoError(t, engine.WaitPodsReady(
		context.Background(), "default",
		RedpandaPodSelector("redpanda-cluster"), 1, time.Minute))
}

func TestWaitJobStarted(t *testing.T) {
	clientSet := fake.NewSimpleClientset(&batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: "vwap-loadgen", Namespace: "voltsp"},
		Status:     batchv1.JobStatus{Active: 1},
	})
	engine := CreateEngineWithClient(clientSet)

	require.NoError(t, engine.WaitJobStarted(
		context.Background(), "voltsp", "vwap-loadgen", time.Minute))
}
