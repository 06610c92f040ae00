package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	binderr "github.com/wovenml/weavefab/pkg/bind/errors"
	"github.com/wovenml/weavefab/pkg/domain/deployment"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
)

// ModelServer is the wire shape of a located model server.
type ModelServer struct {
	Name          string    `json:"name"`
	Pipeline      string    `json:"pipeline,omitempty"`
	Step          string    `json:"step,omitempty"`
	Model         string    `json:"model,omitempty"`
	Running       bool      `json:"running"`
	PredictionURL string    `json:"prediction_url,omitempty"`
	Created       time.Time `json:"created"`
}

func GetModelServerHandler(provider deployment.Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		running := false
		if raw := c.QueryParam("running"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return binderr.BadRequest("running should be a boolean", err)
			}
			running = parsed
		}

		found, err := deployment.FindService(
			ctx, provider,
			c.QueryParam("pipeline"), c.QueryParam("step"), c.QueryParam("model"),
			running,
		)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, ModelServer{
			Name:          found.Name,
			Pipeline:      found.PipelineName,
			Step:          found.PipelineStepName,
			Model:         found.ModelName,
			Running:       found.Running,
			PredictionURL: found.PredictionURL,
			Created:       found.Created,
		})
	}
}
