package errors_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apierr "github.com/wovenml/weavefab/pkg/api/types/errors"
)

func TestErrorMessage_UnmarshalJSON(t *testing.T) {
	t.Run("it decodes a full error response", func(t *testing.T) {
		body := []byte(`{"message": {"reason": "not found", "advice": "check the id"}}`)

		actual := apierr.ErrorResponse{}
		if err := json.Unmarshal(body, &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Message.Reason != "not found" {
			t.Errorf("reason: (actual, expected) = (%s, not found)", actual.Message.Reason)
		}
		if actual.Message.Advice != "check the id" {
			t.Errorf("advice: (actual, expected) = (%s, check the id)", actual.Message.Advice)
		}
	})

	t.Run("advice may be absent", func(t *testing.T) {
		actual := apierr.ErrorMessage{}
		if err := json.Unmarshal([]byte(`{"reason": "bad request"}`), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Advice != "" {
			t.Errorf("advice should stay empty: %s", actual.Advice)
		}
	})

	t.Run("it refuses a message without reason", func(t *testing.T) {
		actual := apierr.ErrorMessage{}
		if err := json.Unmarshal([]byte(`{"advice": "no reason given"}`), &actual); err == nil {
			t.Error("decoding should fail without reason")
		}
	})
}

func TestErrorMessage_Error(t *testing.T) {
	t.Run("the message lines up reason, advice and cause", func(t *testing.T) {
		cause := errors.New("fake cause")
		testee := apierr.ErrorMessage{
			Reason: "unexpected error", Advice: "retry later", Cause: cause,
		}

		for _, needle := range []string{"unexpected error", "retry later", "fake cause"} {
			if !strings.Contains(testee.Error(), needle) {
				t.Errorf("message should contain %q: %s", needle, testee.Error())
			}
		}
		if !errors.Is(testee, cause) {
			t.Error("the message should unwrap to its cause")
		}
	})
}
