package bitunix

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/bitjournal/journal"
)

type stubCreds struct {
	cred  *journal.Credential
	err   error
	calls int
}

func (s *stubCreds) GetCredential(userID string) (*journal.Credential, error) {
	s.calls++
	return s.cred, s.err
}

func testCreds() *stubCreds {
	return &stubCreds{cred: &journal.Credential{
		UserID:    "U1",
		APIKey:    "demo-key",
		APISecret: "demo-secret",
	}}
}

func TestRequestUnregisteredShortCircuits(t *testing.T) {
	t.Parallel()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	creds := &stubCreds{} // no credential on file
	client := NewClient(creds, server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)
	assert.ErrorIs(t, err, ErrUnregistered)
	assert.Equal(t, 1, creds.calls)
	assert.Equal(t, 0, hits, "no network call for unregistered users")
}

func TestRequestSignedGET(t *testing.T) {
	t.Parallel()

	hexRe := regexp.MustCompile(`^[0-9a-f]+$`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "demo-key", r.Header.Get("api-key"))
		assert.Empty(t, r.Header.Get("Content-Type"), "read requests carry no content type")

		nonce := r.Header.Get("nonce")
		ts := r.Header.Get("timestamp")
		assert.Len(t, nonce, 32)
		assert.Regexp(t, hexRe, nonce)
		assert.Regexp(t, `^\d+$`, ts)

		// The server can rebuild the signature from the headers and the
		// canonical request shape; body is empty for GET.
		want := Sign("demo-key", "demo-secret", nonce, ts, "limit50skip0", "")
		assert.Equal(t, want, r.Header.Get("sign"))

		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("skip"))

		w.Write([]byte(`{"code":0,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	payload, err := client.Request(context.Background(), "U1", http.MethodGet, "/api/x",
		map[string]any{"limit": 50, "skip": 0}, nil)
	require.NoError(t, err)
	assert.Contains(t, payload, "data")
}

func TestRequestSignedPOSTBindsBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		assert.Equal(t, `{"symbol":"BTCUSDT"}`, body)

		want := Sign("demo-key", "demo-secret",
			r.Header.Get("nonce"), r.Header.Get("timestamp"), "", body)
		assert.Equal(t, want, r.Header.Get("sign"))

		w.Write([]byte(`{"code":"0"}`)) // string-typed success code
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodPost, "/api/x",
		nil, map[string]any{"symbol": "BTCUSDT"})
	assert.NoError(t, err)
}

func TestRequestHTTPErrorTruncatesExcerpt(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Len(t, te.Excerpt, 400)
	assert.NotContains(t, err.Error(), "demo-secret")
}

func TestRequestMalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)

	var mr *MalformedResponse
	require.ErrorAs(t, err, &mr)
	assert.Contains(t, mr.Excerpt, "not json")
}

func TestRequestNonObjectPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)

	var us *UnexpectedShape
	assert.ErrorAs(t, err, &us)
}

func TestRequestExchangeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":10001,"msg":"invalid signature"}`))
	}))
	defer server.Close()

	client := NewClient(testCreds(), server.URL)

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)

	var ee *ExchangeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "10001", ee.Code)
	assert.Equal(t, "invalid signature", ee.Message)
}

func TestRequestExchangeErrorMessageFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want string
	}{
		{`{"code":5,"message":"secondary field"}`, "secondary field"},
		{`{"code":5}`, "no detail"},
		{`{"msg":"missing code"}`, "missing code"}, // absent code is not success
	}

	for _, tc := range cases {
		body := tc.body
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(testCreds(), server.URL)
		_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)

		var ee *ExchangeError
		require.ErrorAs(t, err, &ee, body)
		assert.Equal(t, tc.want, ee.Message, body)

		server.Close()
	}
}

func TestRequestCredentialLookupFailure(t *testing.T) {
	t.Parallel()

	creds := &stubCreds{err: errors.New("disk on fire")}
	client := NewClient(creds, "http://127.0.0.1:0")

	_, err := client.Request(context.Background(), "U1", http.MethodGet, "/x", nil, nil)
	assert.ErrorContains(t, err, "credential lookup")
}
