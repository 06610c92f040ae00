// DDL of the weavefab metadata store.
package schema

import (
	"context"

	kpool "github.com/wovenml/weavefab/pkg/conn/db/postgres/pool"
	"github.com/wovenml/weavefab/pkg/xerrors"
)

// statements, in dependency order.
var ddl = []string{
	`create table if not exists "event_source" (
		"id" uuid primary key,
		"workspace" uuid not null,
		"name" varchar(255) not null,
		"flavor" varchar(255) not null,
		"subtype" varchar(255) not null,
		"configuration" jsonb not null default '{}'::jsonb,
		"created" timestamp with time zone not null default now()
	)`,
	`create table if not exists "trigger" (
		"id" uuid primary key,
		"workspace" uuid not null,
		"name" varchar(255) not null,
		"description" varchar(255) not null default '',
		"event_source_id" uuid not null references "event_source" ("id"),
		"event_filter" jsonb not null default '{}'::jsonb,
		"action" jsonb not null default '{}'::jsonb,
		"action_flavor" varchar(255) not null,
		"action_subtype" varchar(255) not null,
		"is_active" boolean not null default true,
		"created" timestamp with time zone not null default now(),
		"updated" timestamp with time zone not null default now()
	)`,
	`create index if not exists "trigger_workspace" on "trigger" ("workspace")`,
	`create index if not exists "trigger_event_source" on "trigger" ("event_source_id")`,

	// execution history cascades away with its trigger.
	`create table if not exists "trigger_execution" (
		"id" uuid primary key,
		"trigger_id" uuid not null references "trigger" ("id") on delete cascade,
		"event" jsonb not null default '{}'::jsonb,
		"executed" timestamp with time zone not null default now()
	)`,
}

// Apply creates the automation tables when they do not exist yet.
func Apply(ctx context.Context, conn kpool.Queryer) error {
	for _, stmt := range ddl {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return xerrors.Wrap(err)
		}
	}
	return nil
}
