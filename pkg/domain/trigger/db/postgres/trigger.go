package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgtype"
	"github.com/wovenml/weavefab/pkg/api/types/pages"
	kpool "github.com/wovenml/weavefab/pkg/conn/db/postgres/pool"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	kpgerr "github.com/wovenml/weavefab/pkg/domain/errors/dberrors/postgres"
	"github.com/wovenml/weavefab/pkg/domain/eventsource"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
	"github.com/wovenml/weavefab/pkg/domain/trigger"
	kdbtrigger "github.com/wovenml/weavefab/pkg/domain/trigger/db"
	"github.com/wovenml/weavefab/pkg/xerrors"
)

type triggerPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbtrigger.TriggerInterface {
	return &triggerPG{pool: pool}
}

var _ kdbtrigger.TriggerInterface = &triggerPG{}

func marshalOpaque(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, xerrors.Wrap(err)
	}
	return b, nil
}

func unmarshalOpaque(src pgtype.JSONB) (map[string]any, error) {
	if src.Status != pgtype.Present {
		return map[string]any{}, nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(src.Bytes, &m); err != nil {
		return nil, xerrors.Wrap(err)
	}
	return m, nil
}

func (m *triggerPG) Register(ctx context.Context, spec trigger.Spec) (trigger.Trigger, error) {
	eventFilter, err := marshalOpaque(spec.EventFilter)
	if err != nil {
		return trigger.Trigger{}, err
	}
	action, err := marshalOpaque(spec.Action)
	if err != nil {
		return trigger.Trigger{}, err
	}

	stored := trigger.Trigger{
		Id:            uuid.New(),
		Workspace:     spec.Workspace,
		Name:          spec.Name,
		Description:   spec.Description,
		EventSourceId: spec.EventSourceId,
		EventFilter:   spec.EventFilter,
		Action:        spec.Action,
		ActionFlavor:  spec.ActionFlavor,
		ActionSubType: spec.ActionSubType,
		IsActive:      true,
	}

	err = m.pool.QueryRow(
		ctx,
		`
		insert into "trigger" (
			"id", "workspace", "name", "description",
			"event_source_id", "event_filter", "action",
			"action_flavor", "action_subtype", "is_active"
		)
		values ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9, true)
		returning "created", "updated"
		`,
		stored.Id, stored.Workspace, stored.Name, stored.Description,
		stored.EventSourceId, eventFilter, action,
		stored.ActionFlavor, string(stored.ActionSubType),
	).Scan(&stored.Created, &stored.Updated)

	if err != nil {
		pgErr := new(pgconn.PgError)
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return trigger.Trigger{}, kpgerr.Missing{
				Table:    "event_source",
				Identity: fmt.Sprintf("id='%s'", spec.EventSourceId),
			}
		}
		return trigger.Trigger{}, xerrors.Wrap(err)
	}

	if spec.EventFilter == nil {
		stored.EventFilter = map[string]any{}
	}
	if spec.Action == nil {
		stored.Action = map[string]any{}
	}

	return stored, nil
}

func (m *triggerPG) Get(ctx context.Context, id uuid.UUID) (trigger.Response, error) {
	var (
		body        trigger.ResponseBody
		description string
		eventFilter pgtype.JSONB
		action      pgtype.JSONB
		subtype     string

		es       eventsource.EventSource
		esConfig pgtype.JSONB
		esSub    string
	)

	err := m.pool.QueryRow(
		ctx,
		`
		select
			"t"."id", "t"."name", "t"."description",
			"t"."event_filter", "t"."action",
			"t"."action_flavor", "t"."action_subtype", "t"."is_active",
			"es"."id", "es"."workspace", "es"."name",
			"es"."flavor", "es"."subtype", "es"."configuration", "es"."created"
		from "trigger" as "t"
		inner join "event_source" as "es" on "t"."event_source_id" = "es"."id"
		where "t"."id" = $1
		`,
		id,
	).Scan(
		&body.Id, &body.Name, &description,
		&eventFilter, &action,
		&body.ActionFlavor, &subtype, &body.IsActive,
		&es.Id, &es.Workspace, &es.Name,
		&es.Flavor, &esSub, &esConfig, &es.Created,
	)
	if err != nil {
		if isNoRows(err) {
			return trigger.Response{}, kpgerr.Missing{
				Table:    "trigger",
				Identity: fmt.Sprintf("id='%s'", id),
			}
		}
		return trigger.Response{}, xerrors.Wrap(err)
	}

	body.ActionSubType = plugin.SubType(subtype)
	body.EventSourceFlavor = es.Flavor
	es.SubType = plugin.SubType(esSub)

	filterMap, err := unmarshalOpaque(eventFilter)
	if err != nil {
		return trigger.Response{}, err
	}
	actionMap, err := unmarshalOpaque(action)
	if err != nil {
		return trigger.Response{}, err
	}
	es.Configuration, err = unmarshalOpaque(esConfig)
	if err != nil {
		return trigger.Response{}, err
	}

	return trigger.NewFullResponse(
		body,
		trigger.ResponseMetadata{
			Description: description,
			EventFilter: filterMap,
			Action:      actionMap,
		},
		trigger.ResponseResources{EventSource: es},
	), nil
}

// clauses renders filter into a where clause over the joined relation.
//
// ResourceId and ResourceType are resolved against attachment records,
// not here; the generic clause ignores them.
func clauses(filter trigger.Filter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	bind := func(expr string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.Workspace != nil {
		bind(`"t"."workspace" = $%d`, *filter.Workspace)
	}
	if filter.Name != nil {
		bind(`"t"."name" = $%d`, *filter.Name)
	}
	if filter.EventSourceId != nil {
		bind(`"t"."event_source_id" = $%d`, *filter.EventSourceId)
	}
	if filter.IsActive != nil {
		bind(`"t"."is_active" = $%d`, *filter.IsActive)
	}
	if filter.ActionFlavor != nil {
		bind(`"t"."action_flavor" = $%d`, *filter.ActionFlavor)
	}
	if filter.ActionSubType != nil {
		bind(`"t"."action_subtype" = $%d`, string(*filter.ActionSubType))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "where " + strings.Join(conds, " and "), args
}

func (m *triggerPG) Find(ctx context.Context, filter trigger.Filter, page int, size int) (pages.Page[trigger.Response], error) {
	if page <= 0 || size <= 0 {
		return pages.Page[trigger.Response]{}, fmt.Errorf(
			"both page (%d) and size (%d) must be positive non-zero integers: %w",
			page, size, kerr.ErrInvalidArgument,
		)
	}

	where, args := clauses(filter)

	var total int
	if err := m.pool.QueryRow(
		ctx,
		`select count(*) from "trigger" as "t" `+where,
		args...,
	).Scan(&total); err != nil {
		return pages.Page[trigger.Response]{}, xerrors.Wrap(err)
	}

	query := fmt.Sprintf(
		`
		select
			"t"."id", "t"."name", "es"."flavor",
			"t"."action_flavor", "t"."action_subtype", "t"."is_active"
		from "trigger" as "t"
		inner join "event_source" as "es" on "t"."event_source_id" = "es"."id"
		%s
		order by "t"."created", "t"."id"
		limit $%d offset $%d
		`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, size, (page-1)*size)

	rows, err := m.pool.Query(ctx, query, args...)
	if err != nil {
		return pages.Page[trigger.Response]{}, xerrors.Wrap(err)
	}
	defer rows.Close()

	items := []trigger.Response{}
	for rows.Next() {
		var (
			body    trigger.ResponseBody
			subtype string
		)
		if err := rows.Scan(
			&body.Id, &body.Name, &body.EventSourceFlavor,
			&body.ActionFlavor, &subtype, &body.IsActive,
		); err != nil {
			return pages.Page[trigger.Response]{}, xerrors.Wrap(err)
		}
		body.ActionSubType = plugin.SubType(subtype)
		items = append(items, trigger.NewPartialResponse(body))
	}
	if err := rows.Err(); err != nil {
		return pages.Page[trigger.Response]{}, xerrors.Wrap(err)
	}

	return pages.New(page, size, total, items), nil
}

func (m *triggerPG) Update(ctx context.Context, id uuid.UUID, upd trigger.Update) (trigger.Trigger, error) {
	if err := upd.Validate(); err != nil {
		return trigger.Trigger{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return trigger.Trigger{}, xerrors.Wrap(err)
	}
	defer tx.Rollback(ctx)

	var (
		stored      trigger.Trigger
		eventFilter pgtype.JSONB
		action      pgtype.JSONB
		subtype     string
	)
	err = tx.QueryRow(
		ctx,
		`
		select
			"id", "workspace", "name", "description",
			"event_source_id", "event_filter", "action",
			"action_flavor", "action_subtype", "is_active",
			"created", "updated"
		from "trigger" where "id" = $1 for update
		`,
		id,
	).Scan(
		&stored.Id, &stored.Workspace, &stored.Name, &stored.Description,
		&stored.EventSourceId, &eventFilter, &action,
		&stored.ActionFlavor, &subtype, &stored.IsActive,
		&stored.Created, &stored.Updated,
	)
	if err != nil {
		if isNoRows(err) {
			return trigger.Trigger{}, kpgerr.Missing{
				Table:    "trigger",
				Identity: fmt.Sprintf("id='%s'", id),
			}
		}
		return trigger.Trigger{}, xerrors.Wrap(err)
	}
	stored.ActionSubType = plugin.SubType(subtype)
	if stored.EventFilter, err = unmarshalOpaque(eventFilter); err != nil {
		return trigger.Trigger{}, err
	}
	if stored.Action, err = unmarshalOpaque(action); err != nil {
		return trigger.Trigger{}, err
	}

	patched := upd.Apply(stored)

	newFilter, err := marshalOpaque(patched.EventFilter)
	if err != nil {
		return trigger.Trigger{}, err
	}
	newAction, err := marshalOpaque(patched.Action)
	if err != nil {
		return trigger.Trigger{}, err
	}

	if err := tx.QueryRow(
		ctx,
		`
		update "trigger" set
			"name" = $2, "description" = $3,
			"event_filter" = $4::jsonb, "action" = $5::jsonb,
			"is_active" = $6, "updated" = now()
		where "id" = $1
		returning "updated"
		`,
		patched.Id, patched.Name, patched.Description,
		newFilter, newAction, patched.IsActive,
	).Scan(&patched.Updated); err != nil {
		return trigger.Trigger{}, xerrors.Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return trigger.Trigger{}, xerrors.Wrap(err)
	}
	return patched, nil
}

func (m *triggerPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := m.pool.Exec(
		ctx, `delete from "trigger" where "id" = $1`, id,
	)
	if err != nil {
		return xerrors.Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table:    "trigger",
			Identity: fmt.Sprintf("id='%s'", id),
		}
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
