package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/wovenml/weavefab/pkg/db/postgres/schema"
)

// execRecorder is the Queryer subset Apply touches.
type execRecorder struct {
	executed []string
	failOn   func(sql string) error
}

func (r *execRecorder) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	if r.failOn != nil {
		if err := r.failOn(sql); err != nil {
			return nil, err
		}
	}
	r.executed = append(r.executed, sql)
	return pgconn.CommandTag("CREATE TABLE"), nil
}

func (r *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	panic(errors.New("it should not be called: Query"))
}

func (r *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	panic(errors.New("it should not be called: QueryRow"))
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("it creates referenced tables before referencing ones", func(t *testing.T) {
		conn := &execRecorder{}
		if err := schema.Apply(ctx, conn); err != nil {
			t.Fatal(err)
		}

		position := func(table string) int {
			for i, stmt := range conn.executed {
				if strings.Contains(stmt, `create table if not exists "`+table+`"`) {
					return i
				}
			}
			t.Fatalf("no statement creates table %s", table)
			return -1
		}

		if !(position("event_source") < position("trigger")) {
			t.Error(`"event_source" should be created before "trigger"`)
		}
		if !(position("trigger") < position("trigger_execution")) {
			t.Error(`"trigger" should be created before "trigger_execution"`)
		}
	})

	t.Run("every statement is idempotent", func(t *testing.T) {
		conn := &execRecorder{}
		if err := schema.Apply(ctx, conn); err != nil {
			t.Fatal(err)
		}

		for _, stmt := range conn.executed {
			if !strings.Contains(stmt, "if not exists") {
				t.Errorf("statement is not idempotent: %s", stmt)
			}
		}
	})

	t.Run("it stops at the first failing statement", func(t *testing.T) {
		expectedErr := errors.New("fake DDL error")
		conn := &execRecorder{
			failOn: func(sql string) error {
				if strings.Contains(sql, `"trigger"`) {
					return expectedErr
				}
				return nil
			},
		}

		err := schema.Apply(ctx, conn)
		if !errors.Is(err, expectedErr) {
			t.Fatalf("error: (actual, expected) = (%v, %v)", err, expectedErr)
		}
		for _, stmt := range conn.executed {
			if strings.Contains(stmt, "trigger_execution") {
				t.Error("statements after the failure should not run")
			}
		}
	})
}
