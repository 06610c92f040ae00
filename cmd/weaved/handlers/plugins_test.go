package handlers_test

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/wovenml/weavefab/internal/testutils/http"
	apiflavors "github.com/wovenml/weavefab/pkg/api/types/flavors"
	apipages "github.com/wovenml/weavefab/pkg/api/types/pages"
	"github.com/wovenml/weavefab/pkg/domain/integration"
	webhookintegration "github.com/wovenml/weavefab/pkg/domain/integration/webhook"
	"github.com/wovenml/weavefab/pkg/domain/plugin"

	"github.com/wovenml/weavefab/cmd/weaved/handlers"
)

func newReadyRegistry(t *testing.T) *plugin.Registry {
	t.Helper()
	reg := plugin.NewRegistry(log.Default())
	integration.RegisterAll(reg, []integration.Integration{webhookintegration.Integration{}})
	reg.InitializePlugins()
	return reg
}

func TestFindPluginFlavorsHandler(t *testing.T) {

	t.Run("it lists registered flavors of the queried pair as a page", func(t *testing.T) {
		reg := newReadyRegistry(t)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/plugin-flavors?type=event_source&subtype=webhook")

		testee := handlers.FindPluginFlavorsHandler(reg)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code: (actual, expected) = (%d, %d)", respRec.Result().StatusCode, http.StatusOK)
		}

		actual := apipages.Page[apiflavors.Response]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Total != 1 || len(actual.Items) != 1 {
			t.Fatalf("page: (actual) = %+v", actual)
		}
		body := actual.Items[0].Body
		if body.Name != "webhook" || body.Type != "event_source" || body.SubType != "webhook" {
			t.Errorf("flavor body: (actual) = %+v", body)
		}
		if actual.Items[0].Metadata != nil {
			t.Error("metadata should not be attached without hydrate")
		}
	})

	t.Run("with hydrate, flavors carry their metadata facet", func(t *testing.T) {
		reg := newReadyRegistry(t)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/plugin-flavors?type=action&subtype=pipeline_run&hydrate=true")

		testee := handlers.FindPluginFlavorsHandler(reg)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apipages.Page[apiflavors.Response]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if len(actual.Items) != 1 || actual.Items[0].Metadata == nil {
			t.Fatalf("hydrated page: (actual) = %+v", actual)
		}
		if len(actual.Items[0].Metadata.ConfigSchema) == 0 {
			t.Error("hydrated flavor should carry its config schema")
		}
	})

	t.Run("an unknown pair lists an empty page, not an error", func(t *testing.T) {
		reg := newReadyRegistry(t)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/plugin-flavors?type=event_source&subtype=no-such-subtype")

		testee := handlers.FindPluginFlavorsHandler(reg)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apipages.Page[apiflavors.Response]{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Total != 0 || len(actual.Items) != 0 {
			t.Errorf("page: (actual) = %+v", actual)
		}
	})

	for name, target := range map[string]string{
		"without type and subtype, status code should be 400":   "/api/plugin-flavors",
		"with a non-integer page, status code should be 400":    "/api/plugin-flavors?type=action&subtype=pipeline_run&page=abc",
		"with a zero size, status code should be 400":           "/api/plugin-flavors?type=action&subtype=pipeline_run&size=0",
		"with a non-boolean hydrate, status code should be 400": "/api/plugin-flavors?type=action&subtype=pipeline_run&hydrate=maybe",
	} {
		t.Run(name, func(t *testing.T) {
			reg := newReadyRegistry(t)

			e := echo.New()
			c, _ := httptestutil.Get(e, target)

			testee := handlers.FindPluginFlavorsHandler(reg)
			err := testee(c)

			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != http.StatusBadRequest {
				t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGetPluginFlavorHandler(t *testing.T) {

	t.Run("it returns the hydrated response of the named flavor", func(t *testing.T) {
		reg := newReadyRegistry(t)

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/plugin-flavors/event_source/schedule/scheduler")
		c.SetParamNames("type", "subtype", "name")
		c.SetParamValues("event_source", "schedule", "scheduler")

		testee := handlers.GetPluginFlavorHandler(reg)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		actual := apiflavors.Response{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Body.Name != "scheduler" {
			t.Errorf("flavor name: (actual, expected) = (%s, scheduler)", actual.Body.Name)
		}
		if actual.Metadata == nil {
			t.Error("single flavor lookup should be hydrated")
		}
	})

	t.Run("when no flavor matches, status code should be 404", func(t *testing.T) {
		reg := newReadyRegistry(t)

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/plugin-flavors/event_source/schedule/no-such-flavor")
		c.SetParamNames("type", "subtype", "name")
		c.SetParamValues("event_source", "schedule", "no-such-flavor")

		testee := handlers.GetPluginFlavorHandler(reg)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
