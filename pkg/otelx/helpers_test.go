package otelx

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestConvertToAttribute(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{name: "string", value: "hello", want: attribute.String("k", "hello")},
		{name: "bool", value: true, want: attribute.Bool("k", true)},
		{name: "int", value: 42, want: attribute.Int("k", 42)},
		{name: "int64", value: int64(42), want: attribute.Int64("k", 42)},
		{name: "float64", value: 4.2, want: attribute.Float64("k", 4.2)},
		{name: "string slice", value: []string{"a", "b"}, want: attribute.StringSlice("k", []string{"a", "b"})},
		{name: "bytes", value: []byte("raw"), want: attribute.String("k", "raw")},
		{name: "time", value: now, want: attribute.String("k", "2025-03-14T09:30:00Z")},
		{name: "duration", value: 90 * time.Second, want: attribute.String("k", "1m30s")},
		{name: "uuid", value: id, want: attribute.String("k", id.String())},
		{name: "error", value: errors.New("boom"), want: attribute.String("k", "boom")},
		{name: "nil pointer", value: (*string)(nil), want: attribute.String("k", "<nil>")},
		{name: "fallback", value: struct{ A int }{A: 1}, want: attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertToAttribute("k", tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}
