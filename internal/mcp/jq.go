package mcp

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"
	api "github.com/macrat/statusboard/lib-statusboard"
)

// jqParseTime is a custom jq function to parse timestamps of the backend into UNIX time.
func jqParseTime(x any, _ []any) any {
	str, ok := x.(string)
	if !ok {
		return fmt.Errorf("parse_time/0: expected a string but got %T (%v)", x, x)
	}
	t, err := api.ParseTime(str)
	if err != nil {
		return fmt.Errorf("parse_time/0: failed to parse time: %v", err)
	}
	return float64(t.UnixNano()) / 1e9
}

// JQQuery represents a compiled jq query.
type JQQuery struct {
	Code *gojq.Code
}

// ParseJQ parses a jq query string.
// An empty query is the same as ".".
func ParseJQ(query string) (JQQuery, error) {
	if query == "" {
		query = "."
	}

	q, err := gojq.Parse(query)
	if err != nil {
		return JQQuery{}, err
	}

	c, err := gojq.Compile(
		q,
		gojq.WithFunction("parse_time", 0, 0, jqParseTime),
	)
	if err != nil {
		return JQQuery{}, err
	}

	return JQQuery{Code: c}, nil
}

// Output represents the result of an MCP tool call.
type Output struct {
	Result any `json:"result" jsonschema:"The result of the query."`
}

// Run executes the jq query on the input and returns the result.
// A single result is returned as is, and multiple results are returned as an array.
func (q JQQuery) Run(ctx context.Context, input any) (Output, error) {
	var outputs []any

	iter := q.Code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if halt, ok := v.(*gojq.HaltError); ok {
			if halt.ExitCode() == 0 {
				break
			}
			v := map[string]any{
				"status":    "halt_error",
				"exit_code": halt.ExitCode(),
				"value":     halt.Value(),
			}
			outputs = append(outputs, v)
			break
		} else if err, ok := v.(error); ok {
			return Output{}, err
		}
		outputs = append(outputs, v)
	}

	if len(outputs) == 1 {
		return Output{
			Result: outputs[0],
		}, nil
	} else {
		return Output{
			Result: outputs,
		}, nil
	}
}
