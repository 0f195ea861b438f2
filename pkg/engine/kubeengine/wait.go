/* Copyright 2025 The Voltdemo Authors. All rights reserved        *
 * Use of this source code is governed by the 2-Clause BSD License *
 * that can be found in the LICENSE file.                          */

package kubeengine

import (
	"context"
	"fmt"
	"time"

	"github.com/ansel1/merry"
	llog "github.com/sirupsen/logrus"
	k8s_errors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/voltactivedata/voltdemo/pkg/tools"
)

const (
	waitTimeQuantum = 10 * time.Second

	objectWaitQuantum = 5 * time.Second

	StatefulSetReadyTimeout = 15 * time.Minute
	DeploymentReadyTimeout  = 10 * time.Minute
	PodsReadyTimeout        = 10 * time.Minute
	ObjectExistsTimeout     = 2 * time.Minute
)

// WaitStatefulSetExists - operator-managed sets take a while to even be
// registered; the readiness poll is pointless before the object shows up.
func (e *Engine) WaitStatefulSetExists(
	ctx context.Context, namespace, name string, timeout time.Duration,
) error {
	llog.Infof("Waiting for StatefulSet object '%s/%s' to appear (timeout %v)",
		namespace, name, timeout)

	return tools.PollUntil(
		fmt.Sprintf("statefulset %s exists", name),
		func() (bool, error) {
			_, err := e.clientSet.AppsV1().StatefulSets(namespace).Get(
				ctx, name, metav1.GetOptions{})
			if err != nil {
				if k8s_errors.IsNotFound(err) {
					llog.Infof("  StatefulSet '%s' not found yet", name)

					return false, nil
				}

				return false, merry.Prepend(err, "get statefulset")
			}

			return true, nil
		},
		objectWaitQuantum,
		timeout,
	)
}

// WaitStatefulSetReady - poll until ready replicas match spec replicas.
func (e *Engine) WaitStatefulSetReady(
	ctx context.Context, namespace, name string, timeout time.Duration,
) error {
	llog.Infof("Waiting for StatefulSet '%s/%s' readiness (timeout %v)",
		namespace, name, timeout)

	return tools.PollUntil(
		fmt.Sprintf("statefulset %s ready", name),
		func() (bool, error) {
			statefulSet, err := e.clientSet.AppsV1().StatefulSets(namespace).Get(
				ctx, name, metav1.GetOptions{})
			if err != nil {
				return false, merry.Prepend(err, "get statefulset")
			}

			desired := int32(1)
			if statefulSet.Spec.Replicas != nil {
				desired = *statefulSet.Spec.Replicas
			}

			ready := statefulSet.Status.ReadyReplicas
			if desired > 0 && ready == desired {
				llog.Infof("StatefulSet '%s' is ready (%d/%d replicas)", name, ready, desired)

				return true, nil
			}

			llog.Infof("  StatefulSet '%s' not yet ready (%d/%d replicas)", name, ready, desired)

			return false, nil
		},
		waitTimeQuantum,
		timeout,
	)
}

// WaitDeploymentReady - same contract as the statefulset wait.
func (e *Engine) WaitDeploymentReady(
	ctx context.Context, namespace, name string, timeout time.Duration,
) error {
	llog.Infof("Waiting for Deployment '%s/%s' readiness (timeout %v)",
		namespace, name, timeout)

	return tools.PollUntil(
		fmt.Sprintf("deployment %s ready", name),
		func() (bool, error) {
			deployment, err := e.clientSet.AppsV1().Deployments(namespace).Get(
				ctx, name, metav1.GetOptions{})
			if err != nil {
				return false, merry.Prepend(err, "get deployment")
			}

			desired := int32(1)
			if deployment.Spec.Replicas != nil {
				desired = *deployment.Spec.Replicas
			}

			ready := deployment.Status.ReadyReplicas
			if desired > 0 && ready == desired {
				llog.Infof("Deployment '%s' is ready (%d/%d replicas)", name, ready, desired)

				return true, nil
			}

			llog.Infof("  Deployment '%s' not yet ready (%d/%d replicas)", name, ready, desired)

			return false, nil
		},
		waitTimeQuantum,
		timeout,
	)
}

// WaitPodsReady - poll until expectedCount selector-matched pods report the
// Ready condition.
func (e *Engine) WaitPodsReady(
	ctx context.Context, namespace, labelSelector string,
	expectedCount int, timeout time.Duration,
) error {
	llog.Infof("Waiting for %d ready pods matching '%s' in namespace '%s' (timeout %v)",
		expectedCount, labelSelector, namespace, timeout)

	return tools.PollUntil(
		fmt.Sprintf("pods %s ready", labelSelector),
		func() (bool, error) {
			pods, err := e.clientSet.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
				LabelSelector: labelSelector,
			})
			if err != nil {
				return false, merry.Prepend(err, "list pods")
			}

			readyCount := 0
			for i := range pods.Items {
				if podIsReady(&pods.Items[i]) {
					readyCount++
				}
			}

			if readyCount >= expectedCount {
				llog.Infof("All %d pods are ready", expectedCount)

				return true, nil
			}

			llog.Infof("  %d/%d pods ready", readyCount, expectedCount)

			return false, nil
		},
		waitTimeQuantum,
		timeout,
	)
}

// WaitJobStarted - the loadgen job is endless by design, started is enough.
func (e *Engine) WaitJobStarted(
	ctx context.Context, namespace, name string, timeout time.Duration,
) error {
	llog.Infof("Waiting for Job '%s/%s' to start (timeout %v)", namespace, name, timeout)

	return tools.PollUntil(
		fmt.Sprintf("job %s started", name),
		func() (bool, error) {
			job, err := e.clientSet.BatchV1().Jobs(namespace).Get(
				ctx, name, metav1.GetOptions{})
			if err != nil {
				return false, merry.Prepend(err, "get job")
			}

			if job.Status.Active > 0 || job.Status.Succeeded > 0 {
				llog.Infof("Job '%s' has running pods", name)

				return true, nil
			}

			return false, nil
		},
		objectWaitQuantum,
		timeout,
	)
}
