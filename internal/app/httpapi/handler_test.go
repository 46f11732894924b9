package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/R3E-Network/algorithm_service/internal/app"
)

func newTestHandler(t *testing.T, stores app.Stores, limits Limits) http.Handler {
	t.Helper()
	application, err := app.New(stores, nil)
	require.NoError(t, err)
	require.NoError(t, application.Start(context.Background()))
	t.Cleanup(func() { _ = application.Stop(context.Background()) })
	return NewHandler(application, limits)
}

func do(handler http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func marshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func TestAlgorithmEndpoints(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"binary search found", "/api/algorithms/binarySearch?array=1,3,5,7,9,11&target=7",
			`{"originalArray":[1,3,5,7,9,11],"target":7,"index":3}`},
		{"binary search absent", "/api/algorithms/binarySearch?array=1&array=3&array=5&array=7&array=9&target=4",
			`{"originalArray":[1,3,5,7,9],"target":4,"index":-1}`},
		{"binary search echoes unsorted input", "/api/algorithms/binarySearch?array=9,1,5&target=9",
			`{"originalArray":[9,1,5],"target":9,"index":2}`},
		{"quick sort", "/api/algorithms/quickSort?array=64,34,25&array=12,22,11,90",
			`{"originalArray":[64,34,25,12,22,11,90],"sortedArray":[11,12,22,25,34,64,90],"algorithm":"quickSort"}`},
		{"bubble sort", "/api/algorithms/bubbleSort?array=5,-1,5,0",
			`{"originalArray":[5,-1,5,0],"sortedArray":[-1,0,5,5],"algorithm":"bubbleSort"}`},
		{"bubble sort empty", "/api/algorithms/bubbleSort?array=",
			`{"originalArray":[],"sortedArray":[],"algorithm":"bubbleSort"}`},
		{"fibonacci", "/api/algorithms/fibonacci?n=10",
			`{"n":10,"sequence":[0,1,1,2,3,5,8,13,21,34]}`},
		{"fibonacci zero", "/api/algorithms/fibonacci?n=0",
			`{"n":0,"sequence":[]}`},
		{"primes", "/api/algorithms/primeNumbers?limit=30",
			`{"limit":30,"primes":[2,3,5,7,11,13,17,19,23,29]}`},
		{"primes below two", "/api/algorithms/primeNumbers?limit=-5",
			`{"limit":-5,"primes":[]}`},
		{"factorial", "/api/algorithms/factorial?n=5",
			`{"n":5,"result":120}`},
		{"factorial ceiling", "/api/algorithms/factorial?n=20",
			`{"n":20,"result":2432902008176640000}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(handler, http.MethodGet, tc.target, nil)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.want, resp.Body.String())
		})
	}
}

func TestAlgorithmInvalidArgumentsReturnEmptyBadRequest(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	for _, target := range []string{
		"/api/algorithms/fibonacci?n=-1",
		"/api/algorithms/fibonacci?n=94",
		"/api/algorithms/factorial?n=-1",
		"/api/algorithms/factorial?n=21",
	} {
		resp := do(handler, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code, target)
		assert.Empty(t, resp.Body.String(), target)
	}
}

func TestAlgorithmMalformedParameters(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{MaxArrayLen: 3, MaxPrimeLimit: 100})

	for _, target := range []string{
		"/api/algorithms/binarySearch?array=1,2",
		"/api/algorithms/binarySearch?target=1",
		"/api/algorithms/quickSort",
		"/api/algorithms/quickSort?array=1,two,3",
		"/api/algorithms/bubbleSort?array=1,2,3,4",
		"/api/algorithms/fibonacci",
		"/api/algorithms/fibonacci?n=ten",
		"/api/algorithms/primeNumbers?limit=101",
		"/api/algorithms/factorial?n=",
	} {
		resp := do(handler, http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, resp.Code, target)
		var body map[string]string
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestAlgorithmEndpointsRejectOtherMethods(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	resp := do(handler, http.MethodPost, "/api/algorithms/fibonacci?n=3", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)

	resp = do(handler, http.MethodGet, "/api/algorithms/heapSort?array=1", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUserLifecycle(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	resp := do(handler, http.MethodPost, "/api/users", marshal(map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"}))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var ada map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ada))
	assert.Equal(t, float64(1), ada["id"])
	assert.NotEmpty(t, ada["createdAt"])

	resp = do(handler, http.MethodPost, "/api/users", marshal(map[string]any{"name": "Impostor", "email": "ada@example.com"}))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "email already in use")

	resp = do(handler, http.MethodPost, "/api/users", marshal(map[string]any{"name": "Grace Hopper", "email": "grace@example.com"}))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = do(handler, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Ada Lovelace", all[0]["name"])

	resp = do(handler, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"email":"ada@example.com"`)

	resp = do(handler, http.MethodGet, "/api/users/email/grace@example.com", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":2`)

	resp = do(handler, http.MethodGet, "/api/users/search?name=Hop", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Grace Hopper", found[0]["name"])

	resp = do(handler, http.MethodPut, "/api/users/1", marshal(map[string]any{"name": "Ada King", "email": "ada@example.com"}))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Ada King"`)

	resp = do(handler, http.MethodPut, "/api/users/2", marshal(map[string]any{"name": "Grace", "email": "ada@example.com"}))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(handler, http.MethodPut, "/api/users/99", marshal(map[string]any{"name": "Nobody", "email": "nobody@example.com"}))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, resp.Body.String())

	resp = do(handler, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(handler, http.MethodDelete, "/api/users/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = do(handler, http.MethodGet, "/api/users/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Empty(t, resp.Body.String())

	resp = do(handler, http.MethodGet, "/api/users/email/ada@example.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUserRequestValidation(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	resp := do(handler, http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(handler, http.MethodPost, "/api/users", []byte(`{"name":`))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(handler, http.MethodPost, "/api/users", []byte(`{"name":"x","email":"x@example.com","role":"admin"}`))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "role")

	resp = do(handler, http.MethodGet, "/api/users/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(handler, http.MethodPatch, "/api/users/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	resp := do(handler, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())

	do(handler, http.MethodGet, "/api/algorithms/factorial?n=3", nil)
	resp = do(handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), "algorithm_service_algorithms_runs_total"))
}

func TestIntArrayParam(t *testing.T) {
	query := map[string][]string{"a": {"3, 1", "2", ""}}
	values, err := intArrayParam(query, "a", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, values)

	_, err = intArrayParam(query, "a", 2)
	assert.Error(t, err)

	_, err = intArrayParam(query, "b", 10)
	assert.Error(t, err)
}

func TestAlgorithmEndpointsConcurrentCallers(t *testing.T) {
	handler := newTestHandler(t, app.Stores{}, Limits{})

	type call struct {
		target string
		status int
		body   string
	}
	calls := []call{
		{"/api/algorithms/quickSort?array=64,34,25,12,22,11,90", http.StatusOK,
			`{"originalArray":[64,34,25,12,22,11,90],"sortedArray":[11,12,22,25,34,64,90],"algorithm":"quickSort"}`},
		{"/api/algorithms/bubbleSort?array=5,1,4", http.StatusOK,
			`{"originalArray":[5,1,4],"sortedArray":[1,4,5],"algorithm":"bubbleSort"}`},
		{"/api/algorithms/binarySearch?array=9,3,7,1&target=7", http.StatusOK,
			`{"originalArray":[9,3,7,1],"target":7,"index":2}`},
		{"/api/algorithms/primeNumbers?limit=20", http.StatusOK,
			`{"limit":20,"primes":[2,3,5,7,11,13,17,19]}`},
		{"/api/algorithms/fibonacci?n=-1", http.StatusBadRequest, ""},
	}

	var wg sync.WaitGroup
	errs := make(chan string, 32*len(calls))
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range calls {
				resp := do(handler, http.MethodGet, c.target, nil)
				if resp.Code != c.status {
					errs <- c.target + ": unexpected status " + http.StatusText(resp.Code)
					continue
				}
				if c.body == "" {
					if resp.Body.Len() != 0 {
						errs <- c.target + ": expected empty body"
					}
					continue
				}
				var got, want any
				if json.Unmarshal(resp.Body.Bytes(), &got) != nil || json.Unmarshal([]byte(c.body), &want) != nil {
					errs <- c.target + ": invalid json"
					continue
				}
				if !assert.ObjectsAreEqual(want, got) {
					errs <- c.target + ": unexpected body " + resp.Body.String()
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
