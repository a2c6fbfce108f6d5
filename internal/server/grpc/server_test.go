package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/test/bufconn"
)

func TestServe_GracefulStop(t *testing.T) {
	lis := bufconn.Listen(1 << 16)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- newTestServer("secret").Serve(ctx, lis) }()

	// the listener accepts while the server runs
	conn, err := lis.Dial()
	require.NoError(t, err)
	_ = conn.Close()

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve still running after cancel")
	}
}

func TestRun_ListenErrors(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	for _, addr := range []string{"127.0.0.1:99999", busy.Addr().String()} {
		srv := NewGRPCServer(addr, logging.Nop(), nil, nil, "secret")
		require.Error(t, srv.Run(context.Background()), addr)
	}
}
