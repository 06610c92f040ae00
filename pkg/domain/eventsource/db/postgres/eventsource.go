package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/wovenml/weavefab/pkg/conn/db/postgres/pool"
	kpgerr "github.com/wovenml/weavefab/pkg/domain/errors/dberrors/postgres"
	"github.com/wovenml/weavefab/pkg/domain/eventsource"
	kdb "github.com/wovenml/weavefab/pkg/domain/eventsource/db"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
	"github.com/wovenml/weavefab/pkg/xerrors"
)

type eventSourcePG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdb.EventSourceInterface {
	return &eventSourcePG{pool: pool}
}

var _ kdb.EventSourceInterface = &eventSourcePG{}

func (m *eventSourcePG) Get(ctx context.Context, id uuid.UUID) (eventsource.EventSource, error) {
	var (
		es      eventsource.EventSource
		subtype string
		config  pgtype.JSONB
	)
	err := m.pool.QueryRow(
		ctx,
		`
		select "id", "workspace", "name", "flavor", "subtype", "configuration", "created"
		from "event_source" where "id" = $1
		`,
		id,
	).Scan(&es.Id, &es.Workspace, &es.Name, &es.Flavor, &subtype, &config, &es.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return eventsource.EventSource{}, kpgerr.Missing{
				Table:    "event_source",
				Identity: fmt.Sprintf("id='%s'", id),
			}
		}
		return eventsource.EventSource{}, xerrors.Wrap(err)
	}
	es.SubType = plugin.SubType(subtype)

	es.Configuration = map[string]any{}
	if config.Status == pgtype.Present {
		if err := json.Unmarshal(config.Bytes, &es.Configuration); err != nil {
			return eventsource.EventSource{}, xerrors.Wrap(err)
		}
	}
	return es, nil
}
