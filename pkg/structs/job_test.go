package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookURL(t *testing.T) {
	cases := []struct {
		Name   string
		Given  *Job
		Expect string
	}{
		{"NilPayload", &Job{}, ""},
		{"Missing", &Job{Payload: map[string]any{"a": 1}}, ""},
		{"NotString", &Job{Payload: map[string]any{"webhook_url": 12}}, ""},
		{"Set", &Job{Payload: map[string]any{"webhook_url": "http://example.com"}}, "http://example.com"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, c.Given.WebhookURL())
		})
	}
}
