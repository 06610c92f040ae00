package k8s_test

import (
	"context"
	"testing"
	"time"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	fake "k8s.io/client-go/kubernetes/fake"

	"github.com/wovenml/weavefab/pkg/domain/deployment"
	k8sprovider "github.com/wovenml/weavefab/pkg/domain/deployment/k8s"
	"github.com/wovenml/weavefab/pkg/utils/slices"
	"github.com/wovenml/weavefab/pkg/utils/try"
)

const namespace = "serving"

func modelServer(name, pipeline, step, model string, available int32, created time.Time) *kubeapps.Deployment {
	return &kubeapps.Deployment{
		ObjectMeta: kubeapimeta.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				k8sprovider.LabelRole:     k8sprovider.RoleModelServer,
				k8sprovider.LabelPipeline: pipeline,
				k8sprovider.LabelStep:     step,
				k8sprovider.LabelModel:    model,
			},
			CreationTimestamp: kubeapimeta.NewTime(created),
		},
		Status: kubeapps.DeploymentStatus{AvailableReplicas: available},
	}
}

func serviceFor(name string, port int32) *kubecore.Service {
	return &kubecore.Service{
		ObjectMeta: kubeapimeta.ObjectMeta{Name: name, Namespace: namespace},
		Spec: kubecore.ServiceSpec{
			Ports: []kubecore.ServicePort{{Port: port}},
		},
	}
}

func TestFindModelServer(t *testing.T) {
	ctx := context.Background()

	t0 := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	objects := []runtime.Object{
		modelServer("churn-predictor-1", "churn-train", "deploy", "churn", 1, t0),
		modelServer("churn-predictor-2", "churn-train", "deploy", "churn", 1, t0.Add(24*time.Hour)),
		modelServer("churn-predictor-stopped", "churn-train", "deploy", "churn", 0, t0.Add(48*time.Hour)),
		modelServer("fraud-scorer", "fraud-train", "score", "fraud", 1, t0),
		serviceFor("churn-predictor-1", 8080),
		serviceFor("churn-predictor-2", 8080),
		serviceFor("churn-predictor-stopped", 8080),
		// fraud-scorer has no Service on purpose.
	}

	t.Run("it lists matching servers most recent first", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(
			ctx, "churn-train", "deploy", "churn", false,
		)).OrFatal(t)

		names := slices.Map(actual, func(s deployment.Service) string { return s.Name })
		expected := []string{"churn-predictor-stopped", "churn-predictor-2", "churn-predictor-1"}
		if len(names) != len(expected) {
			t.Fatalf("listed servers: (actual, expected) = (%v, %v)", names, expected)
		}
		for i := range expected {
			if names[i] != expected[i] {
				t.Errorf("listed servers: (actual, expected) = (%v, %v)", names, expected)
				break
			}
		}
	})

	t.Run("with running, servers without available replicas are dropped", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(
			ctx, "churn-train", "deploy", "churn", true,
		)).OrFatal(t)

		for _, s := range actual {
			if !s.Running {
				t.Errorf("server %s should be running", s.Name)
			}
			if s.Name == "churn-predictor-stopped" {
				t.Error("stopped server should be dropped")
			}
		}
		if len(actual) != 2 {
			t.Errorf("running servers: (actual, expected) = (%d, 2)", len(actual))
		}
	})

	t.Run("empty attributes match any server", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(ctx, "", "", "", false)).OrFatal(t)
		if len(actual) != 4 {
			t.Errorf("listed servers: (actual, expected) = (%d, 4)", len(actual))
		}
	})

	t.Run("the prediction URL points at the exposing Service", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(
			ctx, "churn-train", "deploy", "churn", true,
		)).OrFatal(t)

		expected := "http://churn-predictor-2.serving.svc.cluster.local:8080"
		if actual[0].PredictionURL != expected {
			t.Errorf(
				"prediction URL: (actual, expected) = (%s, %s)",
				actual[0].PredictionURL, expected,
			)
		}
	})

	t.Run("a server whose Service is gone is listed with an empty URL", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(
			ctx, "fraud-train", "score", "fraud", false,
		)).OrFatal(t)

		if len(actual) != 1 {
			t.Fatalf("listed servers: (actual, expected) = (%d, 1)", len(actual))
		}
		if actual[0].PredictionURL != "" {
			t.Errorf("prediction URL should be empty (actual = %s)", actual[0].PredictionURL)
		}
	})

	t.Run("labels fill the service attributes", func(t *testing.T) {
		clientset := fake.NewSimpleClientset(objects...)
		testee := k8sprovider.New(k8sprovider.WrapClientset(clientset), namespace, "cluster.local")

		actual := try.To(testee.FindModelServer(
			ctx, "fraud-train", "score", "fraud", false,
		)).OrFatal(t)

		s := actual[0]
		if s.PipelineName != "fraud-train" || s.PipelineStepName != "score" || s.ModelName != "fraud" {
			t.Errorf("attributes: (actual) = %+v", s)
		}
		if !s.Created.Equal(t0) {
			t.Errorf("created: (actual, expected) = (%s, %s)", s.Created, t0)
		}
	})
}
