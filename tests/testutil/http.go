package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase describes one request against a chain of handlers
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	Headers        map[string]string
	Principal      *identity.Principal
	ExpectedStatus int
	ExpectedCode   string
	Validate       func(t *testing.T, rec *httptest.ResponseRecorder)
}

// RunHTTPTestCases runs every case as a subtest
func RunHTTPTestCases(t *testing.T, handlers []gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handlers, tc)
		})
	}
}

// RunHTTPTestCase serves tc through a fresh engine. The principal, when
// set, is installed ahead of handlers the way the JWT middleware would.
func RunHTTPTestCase(t *testing.T, handlers []gin.HandlerFunc, tc HTTPTestCase) *httptest.ResponseRecorder {
	t.Helper()

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	engine := gin.New()
	chain := make([]gin.HandlerFunc, 0, len(handlers)+1)
	if tc.Principal != nil {
		p := *tc.Principal
		chain = append(chain, func(c *gin.Context) {
			tctx := &TestContext{Context: c}
			tctx.SetPrincipal(p)
			c.Next()
		})
	}
	chain = append(chain, handlers...)
	engine.Handle(method, routePath(path), chain...)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, rec.Code, rec.Body.String())
	}
	if tc.ExpectedCode != "" {
		AssertErrorCode(t, rec, tc.ExpectedCode)
	}
	if tc.Validate != nil {
		tc.Validate(t, rec)
	}
	return rec
}

// routePath drops the query string so the route matches the request
func routePath(path string) string {
	route, _, _ := strings.Cut(path, "?")
	return route
}

// Envelope mirrors the JSON envelope every endpoint answers with
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
}

// DecodeEnvelope parses the response body into an envelope
func DecodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// AssertSuccess asserts a successful envelope and returns its data
func AssertSuccess[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	env := DecodeEnvelope[T](t, rec)
	assert.True(t, env.Success, rec.Body.String())
	assert.Nil(t, env.Error)
	return env.Data
}

// AssertErrorCode asserts an error envelope carrying code
func AssertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	env := DecodeEnvelope[any](t, rec)
	assert.False(t, env.Success, rec.Body.String())
	require.NotNil(t, env.Error, rec.Body.String())
	assert.Equal(t, code, env.Error.Code)
}

// ToJSONReader encodes v as a JSON reader
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
