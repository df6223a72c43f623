package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServer_StartStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	sl := NewPlainListener()
	listener, err := sl.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	srv := NewHTTPServer(handler, addr)
	assert.Equal(t, addr, srv.Address())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(sl)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		return true
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-done)
}

func TestTLSListener_MissingCert(t *testing.T) {
	sl := NewTLSListener("missing-cert.pem", "missing-key.pem")
	_, err := sl.Listen("tcp", "127.0.0.1:0")
	assert.Error(t, err)
}
