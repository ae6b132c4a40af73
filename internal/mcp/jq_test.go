package mcp_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/macrat/statusboard/internal/mcp"
)

func TestParseJQ(t *testing.T) {
	tests := []struct {
		Name    string
		Query   string
		Input   any
		Output  any
		IsError bool
	}{
		{
			Name:   "empty",
			Query:  "",
			Input:  map[string]any{"foo": "bar"},
			Output: map[string]any{"foo": "bar"},
		},
		{
			Name:   "identity",
			Query:  ".",
			Input:  map[string]any{"foo": "bar"},
			Output: map[string]any{"foo": "bar"},
		},
		{
			Name:   "select",
			Query:  ".foo",
			Input:  map[string]any{"foo": "bar"},
			Output: "bar",
		},
		{
			Name:   "filter_single",
			Query:  ".[] | select(.x > 1)",
			Input:  []any{map[string]any{"x": 1}, map[string]any{"x": 2}},
			Output: map[string]any{"x": 2}, // single result is not wrapped in array
		},
		{
			Name:   "filter_multiple",
			Query:  ".[] | select(.x > 0)",
			Input:  []any{map[string]any{"x": 1}, map[string]any{"x": 2}},
			Output: []any{map[string]any{"x": 1}, map[string]any{"x": 2}}, // multiple results are wrapped in array
		},
		{
			Name:    "parse_error",
			Query:   "invalid{{",
			IsError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			q, err := mcp.ParseJQ(tt.Query)
			if tt.IsError {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output, err := q.Run(context.Background(), tt.Input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.Output, output.Result); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		Input   any
		Output  any
		IsError bool
	}{
		{"2024-01-01T00:00:00Z", float64(1704067200), false},
		{"2024-01-01T09:00:00+09:00", float64(1704067200), false},
		{"2024-01-01T00:00:00.5Z", float64(1704067200.5), false},
		{"2024-01-01 00:00:00", float64(1704067200), false},
		{"yesterday", nil, true},
		{123, nil, true},
	}

	q, err := mcp.ParseJQ("parse_time")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.Input), func(t *testing.T) {
			output, err := q.Run(context.Background(), tt.Input)
			if tt.IsError {
				if err == nil {
					t.Fatalf("expected error but got %v", output.Result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.Output, output.Result); diff != "" {
				t.Errorf("unexpected output (-want +got):\n%s", diff)
			}
		})
	}
}
