package auth

import (
	"encoding/base64"
	"fmt"
	"strings"

	"prekeyd/internal/model"
)

// ParseBasicHeader decodes an Authorization header value into a credential
// pair. The transport hands the raw header here; the core only ever sees the
// decoded pair.
func ParseBasicHeader(value string) (model.Credentials, error) {
	const prefix = "Basic "
	if !strings.HasPrefix(value, prefix) {
		return model.Credentials{}, fmt.Errorf("authorization header is not basic")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, prefix))
	if err != nil {
		return model.Credentials{}, fmt.Errorf("failed to decode authorization header: %w", err)
	}

	number, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return model.Credentials{}, fmt.Errorf("authorization header is malformed")
	}

	return model.Credentials{Number: number, Password: password}, nil
}

// BasicHeader encodes a credential pair into an Authorization header value.
func BasicHeader(number, password string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(number + ":" + password))
	return "Basic " + encoded
}
