package bitunix

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// CanonicalQuery encodes query parameters for signing: entries are
// sorted by name and concatenated as key1value1key2value2 with no
// separators. Nil values render as the empty string, and an empty or
// nil map canonicalizes to "".
func CanonicalQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		if v := params[k]; v != nil {
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}

// CanonicalBody serializes a request body for signing. GET requests
// always sign the empty string regardless of body; other methods sign
// the compact JSON encoding (nil body also signs as "").
func CanonicalBody(method string, body any) (string, error) {
	if strings.ToUpper(method) == http.MethodGet || body == nil {
		return "", nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Sign derives the request signature the exchange verifies. Two SHA-256
// passes: the first hashes nonce+timestamp+apiKey+query+body, the second
// hashes firstDigest+apiSecret, so the secret never enters the first
// input and any mutation of the signed bytes invalidates the result.
func Sign(apiKey, apiSecret, nonce, timestamp, queryCanon, bodyStr string) string {
	first := sha256Hex(nonce + timestamp + apiKey + queryCanon + bodyStr)
	return sha256Hex(first + apiSecret)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
