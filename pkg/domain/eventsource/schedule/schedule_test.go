package schedule_test

import (
	"errors"
	"testing"

	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/eventsource/schedule"
)

func TestEventSource_ValidateConfiguration(t *testing.T) {
	testee := schedule.Flavor{}.NewPlugin()

	for name, theory := range map[string]struct {
		conf map[string]any
		ok   bool
	}{
		"interval only": {
			conf: map[string]any{"interval": "15m"}, ok: true,
		},
		"interval with start_at": {
			conf: map[string]any{"interval": "1h", "start_at": "2026-09-01T00:00:00Z"}, ok: true,
		},
		"missing interval": {
			conf: map[string]any{}, ok: false,
		},
		"interval is not a duration": {
			conf: map[string]any{"interval": "every day"}, ok: false,
		},
		"interval is not a string": {
			conf: map[string]any{"interval": 900}, ok: false,
		},
		"too short interval": {
			conf: map[string]any{"interval": "100ms"}, ok: false,
		},
		"broken start_at": {
			conf: map[string]any{"interval": "15m", "start_at": "tomorrow"}, ok: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := testee.ValidateConfiguration(theory.conf)
			if theory.ok {
				if err != nil {
					t.Errorf("unexpected error: %+v", err)
				}
				return
			}
			if !errors.Is(err, kerr.ErrInvalidArgument) {
				t.Errorf("unexpected error: %+v", err)
			}
		})
	}
}
