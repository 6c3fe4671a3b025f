package bitunix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/bitjournal/journal"
	"github.com/rustyeddy/bitjournal/pkg/id"
)

// BaseURL is the Bitunix futures REST host.
const BaseURL = "https://fapi.bitunix.com"

// requestTimeout bounds the whole call: connect, send, and read.
const requestTimeout = 20 * time.Second

// CredentialSource resolves stored API credentials by user identity.
// A nil credential with a nil error means the user never registered.
// *journal.SQLite satisfies this.
type CredentialSource interface {
	GetCredential(userID string) (*journal.Credential, error)
}

// Client issues signed REST calls against the exchange on behalf of a
// registered user. Credentials are looked up per call and never cached.
type Client struct {
	http  *resty.Client
	creds CredentialSource
}

// NewClient builds a client over the given credential store. An empty
// baseURL selects the production host; tests pass their own.
func NewClient(creds CredentialSource, baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(requestTimeout),
		creds: creds,
	}
}

// Request issues one authenticated call and validates the response
// envelope. It fails with ErrUnregistered before touching the network
// when the user has no stored credentials, and otherwise returns the
// parsed top-level object once the embedded code equals the success
// sentinel. Credentials and signatures never reach the logs.
func (c *Client) Request(ctx context.Context, userID, method, path string, params map[string]any, body any) (map[string]any, error) {
	cred, err := c.creds.GetCredential(userID)
	if err != nil {
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if cred == nil {
		return nil, ErrUnregistered
	}

	method = strings.ToUpper(method)
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	nonce := id.Nonce()

	queryCanon := CanonicalQuery(params)
	bodyStr, err := CanonicalBody(method, body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	sign := Sign(cred.APIKey, cred.APISecret, nonce, timestamp, queryCanon, bodyStr)

	req := c.http.R().
		SetContext(ctx).
		SetHeader("api-key", cred.APIKey).
		SetHeader("timestamp", timestamp).
		SetHeader("nonce", nonce).
		SetHeader("sign", sign)

	for k, v := range params {
		if v == nil {
			req.SetQueryParam(k, "")
			continue
		}
		req.SetQueryParam(k, fmt.Sprint(v))
	}

	if method != http.MethodGet {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(bodyStr)
	}

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"params": params,
	}).Info("bitunix request")

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"url":    resp.Request.URL,
		"status": resp.StatusCode(),
	}).Info("bitunix response")

	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{Status: resp.StatusCode(), Excerpt: excerpt(resp.Body())}
	}

	var parsed any
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, &MalformedResponse{Excerpt: excerpt(resp.Body())}
	}

	payload, ok := parsed.(map[string]any)
	if !ok {
		return nil, &UnexpectedShape{Detail: "expected a JSON object at the top level"}
	}

	logrus.WithField("payload", payload).Info("bitunix payload")

	if code, ok := successCode(payload["code"]); !ok {
		return nil, &ExchangeError{Code: code, Message: messageOf(payload)}
	}

	return payload, nil
}

// successCode reports whether the envelope's code field equals the
// success sentinel 0, tolerating both numeric and string encodings. The
// textual form of the code is returned for diagnostics.
func successCode(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), t == 0
	case string:
		return t, t == "0"
	case nil:
		return "", false
	default:
		return fmt.Sprint(t), false
	}
}

func messageOf(payload map[string]any) string {
	if s, ok := payload["msg"].(string); ok && s != "" {
		return s
	}
	if s, ok := payload["message"].(string); ok && s != "" {
		return s
	}
	return "no detail"
}
