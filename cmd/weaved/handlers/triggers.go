package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apitriggers "github.com/wovenml/weavefab/pkg/api/types/triggers"
	binderr "github.com/wovenml/weavefab/pkg/bind/errors"
	bindtriggers "github.com/wovenml/weavefab/pkg/bind/triggers"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	kdbes "github.com/wovenml/weavefab/pkg/domain/eventsource/db"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
	"github.com/wovenml/weavefab/pkg/domain/trigger"
	kdbtrigger "github.com/wovenml/weavefab/pkg/domain/trigger/db"
	"github.com/wovenml/weavefab/pkg/utils/pointer"
)

func RegisterTriggerHandler(
	dbTrigger kdbtrigger.TriggerInterface,
	dbEventSource kdbes.EventSourceInterface,
	reg *plugin.Registry,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := apitriggers.Spec{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return binderr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				binderr.WithAdvice(err.Error()),
				binderr.WithError(err),
			)
		}

		spec, err := trigger.Param{
			Workspace:     req.Workspace,
			Name:          req.Name,
			Description:   req.Description,
			EventSourceId: req.EventSourceId,
			EventFilter:   req.EventFilter,
			Action:        req.Action,
			ActionFlavor:  req.ActionFlavor,
			ActionSubType: plugin.SubType(req.ActionSubType),
		}.Validate()
		if err != nil {
			return binderr.BadRequest("invalid trigger", err)
		}

		// the action configuration is checked by its plugin before anything
		// is stored.
		actionPlugin, err := reg.Plugin(plugin.TypeAction, spec.ActionSubType, spec.ActionFlavor)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.BadRequest("unknown action flavor", err)
			}
			if errors.Is(err, kerr.ErrUninitialized) {
				return binderr.ServiceUnavailable("plugins are still starting up. retry later", err)
			}
			return binderr.InternalServerError(err)
		}
		if err := actionPlugin.ValidateConfiguration(spec.Action); err != nil {
			return binderr.BadRequest("invalid action configuration", err)
		}

		// the event source must exist before the trigger points at it.
		// The store's foreign key backstops races with deletion.
		if _, err := dbEventSource.Get(ctx, spec.EventSourceId); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NewErrorMessage(
					http.StatusNotFound,
					"event source is missing",
					binderr.WithError(err),
				)
			}
			return binderr.InternalServerError(err)
		}

		registered, err := dbTrigger.Register(ctx, spec)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NewErrorMessage(
					http.StatusNotFound,
					"event source is missing",
					binderr.WithError(err),
				)
			}
			return binderr.InternalServerError(err)
		}

		resp, err := dbTrigger.Get(ctx, registered.Id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindtriggers.ComposeDetail(resp))
	}
}

func FindTriggersHandler(dbTrigger kdbtrigger.TriggerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		filter := trigger.Filter{}
		if raw := c.QueryParam("workspace"); raw != "" {
			workspace, err := uuid.Parse(raw)
			if err != nil {
				return binderr.BadRequest("workspace should be a UUID", err)
			}
			filter.Workspace = &workspace
		}
		if raw := c.QueryParam("name"); raw != "" {
			filter.Name = &raw
		}
		if raw := c.QueryParam("event_source"); raw != "" {
			eventSourceId, err := uuid.Parse(raw)
			if err != nil {
				return binderr.BadRequest("event_source should be a UUID", err)
			}
			filter.EventSourceId = &eventSourceId
		}
		if raw := c.QueryParam("is_active"); raw != "" {
			isActive, err := strconv.ParseBool(raw)
			if err != nil {
				return binderr.BadRequest("is_active should be a boolean", err)
			}
			filter.IsActive = &isActive
		}
		if raw := c.QueryParam("action_flavor"); raw != "" {
			filter.ActionFlavor = &raw
		}
		if raw := c.QueryParam("action_subtype"); raw != "" {
			filter.ActionSubType = pointer.Ref(plugin.SubType(raw))
		}

		page, err := positiveIntParam(c, "page", defaultPage)
		if err != nil {
			return err
		}
		size, err := positiveIntParam(c, "size", defaultSize)
		if err != nil {
			return err
		}

		found, err := dbTrigger.Find(ctx, filter, page, size)
		if err != nil {
			if errors.Is(err, kerr.ErrInvalidArgument) {
				return binderr.BadRequest("page and size should be positive", err)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindtriggers.ComposePage(found))
	}
}

func GetTriggerHandler(dbTrigger kdbtrigger.TriggerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := uuid.Parse(c.Param(paramKey))
		if err != nil {
			return binderr.BadRequest("trigger id should be a UUID", err)
		}

		resp, err := dbTrigger.Get(ctx, id)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindtriggers.ComposeDetail(resp))
	}
}

func UpdateTriggerHandler(dbTrigger kdbtrigger.TriggerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := uuid.Parse(c.Param(paramKey))
		if err != nil {
			return binderr.BadRequest("trigger id should be a UUID", err)
		}

		req := apitriggers.Update{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return binderr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				binderr.WithAdvice(err.Error()),
				binderr.WithError(err),
			)
		}

		upd := trigger.Update{
			Name:        req.Name,
			Description: req.Description,
			EventFilter: req.EventFilter,
			Action:      req.Action,
			IsActive:    req.IsActive,
		}
		if err := upd.Validate(); err != nil {
			return binderr.BadRequest("invalid trigger patch", err)
		}

		if _, err := dbTrigger.Update(ctx, id, upd); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			if errors.Is(err, kerr.ErrInvalidArgument) {
				return binderr.BadRequest("invalid trigger patch", err)
			}
			return binderr.InternalServerError(err)
		}

		resp, err := dbTrigger.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindtriggers.ComposeDetail(resp))
	}
}

func DeleteTriggerHandler(dbTrigger kdbtrigger.TriggerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := uuid.Parse(c.Param(paramKey))
		if err != nil {
			return binderr.BadRequest("trigger id should be a UUID", err)
		}

		if err := dbTrigger.Delete(ctx, id); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
