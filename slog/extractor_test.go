package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/nbsatlas/nbsharvest"
	"github.com/nbsatlas/nbsharvest/mock"
	nbsslog "github.com/nbsatlas/nbsharvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_LogsSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.FieldExtractor{
		ExtractFieldsFn: func(context.Context, string) (map[string]any, error) {
			return map[string]any{"title": "x"}, nil
		},
	}

	e := nbsslog.NewLoggingExtractor(next, logger)
	fields, err := e.ExtractFields(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "x", fields["title"])
	assert.Contains(t, buf.String(), "llm extraction")
	assert.Contains(t, buf.String(), "prompt_bytes=6")
}

func TestLoggingExtractor_LogsAndPropagatesFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.FieldExtractor{
		ExtractFieldsFn: func(context.Context, string) (map[string]any, error) {
			return nil, nbsharvest.Errorf(nbsharvest.EUNAVAILABLE, "service down")
		},
	}

	e := nbsslog.NewLoggingExtractor(next, logger)
	_, err := e.ExtractFields(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, nbsharvest.EUNAVAILABLE, nbsharvest.ErrorCode(err))
	assert.Contains(t, buf.String(), "llm extraction failed")
}
