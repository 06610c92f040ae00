package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	binderr "github.com/wovenml/weavefab/pkg/bind/errors"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

const (
	defaultPage = 1
	defaultSize = 20
)

// parse a positive integer query parameter, or its default when absent.
func positiveIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, binderr.BadRequest(
			name+" should be a positive integer", err,
		)
	}
	return value, nil
}

func FindPluginFlavorsHandler(reg *plugin.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		pluginType := plugin.Type(c.QueryParam("type"))
		subType := plugin.SubType(c.QueryParam("subtype"))
		if pluginType == "" || subType == "" {
			return binderr.BadRequest(
				"query parameters type and subtype are required", nil,
			)
		}

		page, err := positiveIntParam(c, "page", defaultPage)
		if err != nil {
			return err
		}
		size, err := positiveIntParam(c, "size", defaultSize)
		if err != nil {
			return err
		}
		hydrate := false
		if raw := c.QueryParam("hydrate"); raw != "" {
			hydrate, err = strconv.ParseBool(raw)
			if err != nil {
				return binderr.BadRequest("hydrate should be a boolean", err)
			}
		}

		found, err := reg.FlavorResponses(pluginType, subType, page, size, hydrate)
		if err != nil {
			if errors.Is(err, kerr.ErrInvalidArgument) {
				return binderr.BadRequest("page and size should be positive", err)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, found)
	}
}

func GetPluginFlavorHandler(reg *plugin.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		pluginType := plugin.Type(c.Param("type"))
		subType := plugin.SubType(c.Param("subtype"))
		name := c.Param("name")

		flavor, err := reg.FlavorClass(pluginType, subType, name)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, flavor.Response(true))
	}
}
