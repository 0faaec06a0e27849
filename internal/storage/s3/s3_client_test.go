package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/config"
	"invoicecheck/internal/port"
	s3store "invoicecheck/internal/storage/s3"
)

func newClient(t *testing.T, endpoint string) *s3store.Client {
	t.Helper()
	c, err := s3store.NewS3Client(context.Background(), &config.S3Config{
		Region:    "eu-north-1",
		Endpoint:  endpoint,
		AccessKey: "test-access",
		SecretKey: "test-secret",
	})
	require.NoError(t, err)
	return c
}

func TestClient_GetPresignedURL(t *testing.T) {
	c := newClient(t, "http://localhost:9000")

	raw, err := c.GetPresignedURL(context.Background(), "invoices", "analyses/abc/faktura 1.pdf", 900)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/invoices/analyses/abc/faktura 1.pdf", u.Path)
	q := u.Query()
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.Equal(t, `attachment; filename="faktura 1.pdf"`, q.Get("response-content-disposition"))
}

func TestClient_UploadAndDelete(t *testing.T) {
	var mu sync.Mutex
	var methods, paths []string
	var body string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		if r.Method == http.MethodPut {
			body = string(data)
		}
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"etag-1"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	out, err := c.Upload(context.Background(), port.UploadInput{
		Bucket:      "invoices",
		Key:         "analyses/abc/invoice.pdf",
		Body:        strings.NewReader("%PDF-1.4"),
		ContentType: "application/pdf",
		Size:        8,
	})
	require.NoError(t, err)
	assert.Equal(t, `"etag-1"`, out.ETag)

	require.NoError(t, c.Delete(context.Background(), "invoices", "analyses/abc/invoice.pdf"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
	assert.Equal(t, "/invoices/analyses/abc/invoice.pdf", paths[0])
	assert.Contains(t, body, "%PDF-1.4")
}
