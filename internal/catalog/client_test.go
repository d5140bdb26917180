package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method string
	query  string
	auth   string
}

// newUpstream serves body with status on GET /api/v1/models and records the request.
func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	r := chi.NewRouter()
	r.Get("/api/v1/models", func(w http.ResponseWriter, req *http.Request) {
		seen.method = req.Method
		seen.query = req.URL.RawQuery
		seen.auth = req.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestFetch_ReturnsRecordsInOrder(t *testing.T) {
	srv, seen := newUpstream(t, http.StatusOK, `{"data":[
		{"id":"foo/bar:free","architecture":{"instruct_type":"chat"}},
		{"id":"foo/bar","architecture":{"instruct_type":"chat"}},
		{"id":"baz:free"}
	]}`)
	c := New(srv.URL+"/api/v1/models", 0)

	models, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 3)
	assert.Equal(t, "foo/bar:free", models[0].ID)
	it, err := models[0].InstructType()
	require.NoError(t, err)
	assert.Equal(t, "chat", it)
	assert.Equal(t, "foo/bar", models[1].ID)
	assert.Equal(t, "baz:free", models[2].ID)
	assert.Empty(t, models[2].Architecture)

	assert.Equal(t, http.MethodGet, seen.method)
	assert.Empty(t, seen.query)
	assert.Empty(t, seen.auth)
}

func TestFetch_EmptyData(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"data":[]}`)
	models, err := New(srv.URL+"/api/v1/models", time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusBadGateway, `{"error":"upstream"}`)
	_, err := New(srv.URL+"/api/v1/models", 0).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err))
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.False(t, IsDecode(err))
}

func TestFetch_NotFoundRoute(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"data":[]}`)
	_, err := New(srv.URL+"/nope", 0).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestFetch_TransportError(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"data":[]}`)
	url := srv.URL + "/api/v1/models"
	srv.Close()
	_, err := New(url, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, IsStatus(err))
	assert.False(t, IsDecode(err))
	assert.False(t, IsShape(err))
}

func TestFetch_CanceledContext(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"data":[]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL+"/api/v1/models", 0).Fetch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		shape bool
	}{
		{"truncated", `{"data":[{"id":"a:free"`, false},
		{"not json", `<html>`, false},
		{"missing data", `{"models":[]}`, true},
		{"null data", `{"data":null}`, true},
		{"object data", `{"data":{"id":"a:free"}}`, true},
		{"string data", `{"data":"x"}`, true},
		{"top level array", `[{"id":"a:free"}]`, true},
		{"numeric id", `{"data":[{"id":42}]}`, false},
		{"null id", `{"data":[{"id":null}]}`, false},
		{"missing id", `{"data":[{"name":"x"},{"id":"g:free"}]}`, false},
		{"null record", `{"data":[null,{"id":"f:free"}]}`, false},
		{"string record", `{"data":["f:free"]}`, false},
		{"invalid utf-8", "{\"data\":[{\"id\":\"e\xff:free\"}]}", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode([]byte(c.body))
			require.Error(t, err)
			assert.Equal(t, c.shape, IsShape(err), "shape classification: %v", err)
			assert.Equal(t, !c.shape, IsDecode(err), "decode classification: %v", err)
		})
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	models, err := Decode([]byte(`{"data":[{"id":"x:free","pricing":{"prompt":"0"},"name":{"en":"X"},
		"architecture":{"tokenizer":{"k":1},"modality":["text"],"instruct_type":"chat"}}],"extra":true}`))
	require.NoError(t, err)
	require.Len(t, models, 1)
	it, err := models[0].InstructType()
	require.NoError(t, err)
	assert.Equal(t, "chat", it)
}

func TestDecode_LeavesArchitectureUnchecked(t *testing.T) {
	models, err := Decode([]byte(`{"data":[{"id":"paid","architecture":"n/a"},{"id":"b:free"}]}`))
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "paid", models[0].ID)
	assert.Equal(t, "b:free", models[1].ID)
}

func TestDecode_KeepsNonASCIIIds(t *testing.T) {
	models, err := Decode([]byte(`{"data":[{"id":"模型/é:free"}]}`))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "模型/é:free", models[0].ID)
}

func TestNew_Defaults(t *testing.T) {
	c := New("", -time.Second)
	assert.Equal(t, DefaultURL, c.URL())
	assert.Zero(t, c.httpClient.Timeout)
}
