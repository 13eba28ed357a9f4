package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/liscad/liscad/internal/backend"
	"github.com/liscad/liscad/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticGenerator(code string) generator.Client {
	return generator.Func(func(ctx context.Context, req *generator.Request) (*generator.Result, error) {
		return &generator.Result{
			Code:    code,
			Success: code != "",
			Error:   "empty response",
			Metadata: generator.Metadata{
				PromptLength:   100,
				ResponseLength: len(code),
				GenerationTime: 5 * time.Millisecond,
			},
		}, nil
	})
}

func TestPipeline_FromRequirement(t *testing.T) {
	t.Parallel()

	t.Run("generates, validates and translates", func(t *testing.T) {
		p := &Pipeline{Generator: staticGenerator("(layer \"WALLS\")\n(line 0 0 100 0)")}

		res, err := p.FromRequirement(context.Background(), "a wall", "Wall Plan", generator.Settings{Units: "mm"}, nil)

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.True(t, res.Validation.Valid)
		require.NotNil(t, res.Translation)
		assert.True(t, res.Translation.Success)
		assert.Contains(t, res.Translation.Code, `doc.saveas("Wall Plan.dxf")`)
		require.NotNil(t, res.GenMeta)
		assert.Equal(t, 100, res.GenMeta.PromptLength)
	})

	t.Run("generation failure is a hard error with no partial result", func(t *testing.T) {
		p := &Pipeline{Generator: staticGenerator("")}

		res, err := p.FromRequirement(context.Background(), "x", "t", generator.Settings{}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "generation failed")
		assert.Nil(t, res)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		p := &Pipeline{Generator: generator.Func(func(context.Context, *generator.Request) (*generator.Result, error) {
			return nil, errors.New("connection refused")
		})}

		_, err := p.FromRequirement(context.Background(), "x", "t", generator.Settings{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestPipeline_FromDSL(t *testing.T) {
	t.Parallel()

	t.Run("rejects structurally invalid documents before translation", func(t *testing.T) {
		p := &Pipeline{}

		res, err := p.FromDSL(context.Background(), "(line 0 0 1 1", "t")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbalanced parentheses")
		require.NotNil(t, res)
		assert.False(t, res.Validation.Valid)
		assert.Nil(t, res.Translation)
	})

	t.Run("translates a valid document", func(t *testing.T) {
		p := &Pipeline{}

		res, err := p.FromDSL(context.Background(), "(rectangle 0 0 100 50)", "Slab")

		require.NoError(t, err)
		assert.True(t, res.Translation.Success)
		assert.Contains(t, res.Translation.Code, "close=True")
	})

	t.Run("statement faults do not fail the run as a whole", func(t *testing.T) {
		p := &Pipeline{}

		res, err := p.FromDSL(context.Background(), "(line 0 0)\n(circle 0 0 5)", "t")

		require.NoError(t, err)
		assert.False(t, res.Translation.Success)
		assert.Len(t, res.Translation.Errors, 1)
	})
}

func TestPipeline_Execute(t *testing.T) {
	t.Parallel()

	t.Run("attaches the backend drawing", func(t *testing.T) {
		dxf := []byte("EOF")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":     true,
				"dxf_content": base64.StdEncoding.EncodeToString(dxf),
				"filename":    "t.dxf",
				"file_size":   len(dxf),
			})
		}))
		defer server.Close()

		p := &Pipeline{Backend: backend.New(server.URL, time.Second)}
		res, err := p.FromDSL(context.Background(), "(line 0 0 1 1)", "t")
		require.NoError(t, err)

		require.NoError(t, p.Execute(context.Background(), res))
		require.NotNil(t, res.Drawing)
		assert.Equal(t, dxf, res.Drawing.Content)
	})

	t.Run("refuses failed translations", func(t *testing.T) {
		p := &Pipeline{Backend: backend.New("http://127.0.0.1:1", time.Second)}
		res, err := p.FromDSL(context.Background(), "(line 0 0)\n(circle 0 0 1)", "t")
		require.NoError(t, err)

		err = p.Execute(context.Background(), res)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refusing to execute")
	})

	t.Run("requires a configured backend", func(t *testing.T) {
		p := &Pipeline{}
		res, err := p.FromDSL(context.Background(), "(line 0 0 1 1)", "t")
		require.NoError(t, err)

		assert.Error(t, p.Execute(context.Background(), res))
	})
}
