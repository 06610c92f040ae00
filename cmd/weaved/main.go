package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	kback "github.com/wovenml/weavefab/pkg/configs/backend"
	kpool "github.com/wovenml/weavefab/pkg/conn/db/postgres/pool"
	"github.com/wovenml/weavefab/pkg/db/postgres/schema"
	k8sprovider "github.com/wovenml/weavefab/pkg/domain/deployment/k8s"
	espg "github.com/wovenml/weavefab/pkg/domain/eventsource/db/postgres"
	"github.com/wovenml/weavefab/pkg/domain/integration"
	webhookintegration "github.com/wovenml/weavefab/pkg/domain/integration/webhook"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
	triggerpg "github.com/wovenml/weavefab/pkg/domain/trigger/db/postgres"
	"github.com/wovenml/weavefab/pkg/utils/echoutil"
	"github.com/wovenml/weavefab/pkg/utils/kubeutil"

	"github.com/wovenml/weavefab/cmd/weaved/handlers"
)

func main() {
	configPath := flag.String("config-path", "", "weaved config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	conf, err := kback.LoadWeavedConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configuration: %s", err)
	}

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	ctx := context.Background()
	pool, err := kpool.Connect(ctx, conf.Database())
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer pool.Close()
	if err := schema.Apply(ctx, pool); err != nil {
		log.Fatalf("can not prepare database schema: %s", err)
	}

	dbTrigger := triggerpg.New(pool)
	dbEventSource := espg.New(pool)

	// plugin registry: builtins first, then integrations, then the
	// startup barrier. Handlers see the registry only after this.
	registry := plugin.NewRegistry(log.Default())
	integration.RegisterAll(registry, []integration.Integration{
		webhookintegration.Integration{},
	})
	registry.InitializePlugins()

	provider := k8sprovider.New(
		k8sprovider.WrapClientset(kubeutil.ConnectToK8s()),
		conf.Cluster().Namespace(),
		conf.Cluster().Domain(),
	)

	{
		e.GET("/api/plugin-flavors/", handlers.FindPluginFlavorsHandler(registry))
		e.GET("/api/plugin-flavors/:type/:subtype/:name/", handlers.GetPluginFlavorHandler(registry))
	}

	{
		triggerId := "triggerId"
		e.POST("/api/triggers/", handlers.RegisterTriggerHandler(dbTrigger, dbEventSource, registry))
		e.GET("/api/triggers/", handlers.FindTriggersHandler(dbTrigger))
		e.GET("/api/triggers/:triggerId/", handlers.GetTriggerHandler(dbTrigger, triggerId))
		e.PATCH("/api/triggers/:triggerId/", handlers.UpdateTriggerHandler(dbTrigger, triggerId))
		e.DELETE("/api/triggers/:triggerId/", handlers.DeleteTriggerHandler(dbTrigger, triggerId))
	}

	{
		e.GET("/api/model-servers/", handlers.GetModelServerHandler(provider))
	}

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Port())))
}
