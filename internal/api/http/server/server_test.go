package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundListener hands out a listener bound before the server starts, so
// the test knows the address up front.
type boundListener struct {
	ln net.Listener
}

func (b *boundListener) Listen(_, _ string) (net.Listener, error) {
	return b.ln, nil
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":8080")
	assert.Equal(t, ":8080", s.Address())
}

func TestHTTPServer_Stop_BeforeStart(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":0")
	assert.NoError(t, s.Stop(context.Background()))
}

func TestHTTPServer_ServesRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewHTTPServer(mux, ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(&boundListener{ln: ln}) }()

	pingURL := "http://" + ln.Addr().String() + "/ping"
	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(pingURL)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, <-errCh)
}
