package deployment_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wovenml/weavefab/pkg/domain/deployment"
	mocks "github.com/wovenml/weavefab/pkg/domain/deployment/mock"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/utils/try"
)

func TestFindService(t *testing.T) {
	ctx := context.Background()

	t.Run("when the provider finds servers, it returns the first one", func(t *testing.T) {
		newest := deployment.Service{
			Name:             "churn-predictor-2",
			PipelineName:     "churn-train",
			PipelineStepName: "deploy",
			ModelName:        "churn",
			Running:          true,
			PredictionURL:    "http://churn-predictor-2.serving.svc.cluster.local:8080",
			Created:          time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
		}
		older := newest
		older.Name = "churn-predictor-1"
		older.Created = newest.Created.Add(-24 * time.Hour)

		provider := mocks.NewProvider()
		provider.Impl.FindModelServer = func(
			_ context.Context, pipeline, step, model string, running bool,
		) ([]deployment.Service, error) {
			return []deployment.Service{newest, older}, nil
		}

		actual := try.To(deployment.FindService(
			ctx, provider, "churn-train", "deploy", "churn", true,
		)).OrFatal(t)
		if !actual.Equal(newest) {
			t.Errorf("service: (actual, expected) = (%+v, %+v)", actual, newest)
		}

		if provider.Calls.FindModelServer.Times() != 1 {
			t.Errorf(
				"FindModelServer should be called once (actual = %d)",
				provider.Calls.FindModelServer.Times(),
			)
		}
		args := provider.Calls.FindModelServer[0]
		if args.Pipeline != "churn-train" || args.Step != "deploy" ||
			args.Model != "churn" || !args.Running {
			t.Errorf("provider received wrong query: %+v", args)
		}
	})

	t.Run("when the provider finds nothing, it returns ErrMissing naming every parameter", func(t *testing.T) {
		provider := mocks.NewProvider()
		provider.Impl.FindModelServer = func(
			_ context.Context, pipeline, step, model string, running bool,
		) ([]deployment.Service, error) {
			return []deployment.Service{}, nil
		}

		_, err := deployment.FindService(ctx, provider, "churn-train", "deploy", "churn", false)
		if !errors.Is(err, kerr.ErrMissing) {
			t.Fatalf("error should be ErrMissing (actual = %v)", err)
		}
		for _, needle := range []string{"churn-train", "deploy", "churn", "running=false"} {
			if !strings.Contains(err.Error(), needle) {
				t.Errorf("error message should name %q (actual = %s)", needle, err.Error())
			}
		}
	})

	t.Run("when the provider fails, the error passes through untranslated", func(t *testing.T) {
		expectedErr := errors.New("fake provider error")
		provider := mocks.NewProvider()
		provider.Impl.FindModelServer = func(
			_ context.Context, pipeline, step, model string, running bool,
		) ([]deployment.Service, error) {
			return nil, expectedErr
		}

		_, err := deployment.FindService(ctx, provider, "p", "s", "m", true)
		if !errors.Is(err, expectedErr) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, expectedErr)
		}
		if errors.Is(err, kerr.ErrMissing) {
			t.Error("provider failure should not read as ErrMissing")
		}
	})
}
