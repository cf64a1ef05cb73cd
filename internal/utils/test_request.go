package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRequest выполняет запрос к тестовому серверу и возвращает ответ и тело.
func TestRequest(t *testing.T, ts *httptest.Server, method, path string, headers map[string]string, body io.Reader) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Accept-Encoding", "identity")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(respBody)
}

// TestJSONRequest кодирует payload в JSON и отправляет его с нужным Content-Type.
// Значения headers дополняют или переопределяют заголовки по умолчанию.
func TestJSONRequest(t *testing.T, ts *httptest.Server, method, path string, headers map[string]string, payload any) (*http.Response, string) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	merged := map[string]string{"Content-Type": "application/json"}
	for key, value := range headers {
		merged[key] = value
	}

	return TestRequest(t, ts, method, path, merged, bytes.NewReader(data))
}
