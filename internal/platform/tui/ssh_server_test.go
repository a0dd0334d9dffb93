package tui

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"
)

func TestSSHServerServeAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     ln.Addr().String(),
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
	})
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Expected an error for an address already in use")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve kept running after the listen failed")
	}
}
