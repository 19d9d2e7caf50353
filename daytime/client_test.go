package daytime

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

// fakeSource listens on a loopback port and serves one canned reply per
// connection, like the real daytime service: write, then close.
func fakeSource(t *testing.T, reply []byte) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_, _ = conn.Write(reply)
			conn.Close()
		}
	}()

	return ln.Addr().String()
}

func TestClientFetch(t *testing.T) {
	reply := "\n60471 24-06-01 14:23:05 50 0 0 123.4 UTC(NIST) *\n"
	addr := fakeSource(t, []byte(reply))

	client := New(Params{Config: Config{Server: addr}})

	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := "60471 24-06-01 14:23:05 50 0 0 123.4 UTC(NIST) *"
	if got != want {
		t.Fatalf("Fetch() = %q, want %q", got, want)
	}
}

func TestClientFetch_InvalidBytesReplaced(t *testing.T) {
	addr := fakeSource(t, []byte("60471 24-06-01\xff 14:23:05"))

	client := New(Params{Config: Config{Server: addr}})

	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(got, "�") {
		t.Fatalf("Fetch() = %q, want invalid byte replaced", got)
	}
}

func TestClientFetch_TruncatesToBound(t *testing.T) {
	addr := fakeSource(t, []byte(strings.Repeat("x", 4096)))

	client := New(Params{Config: Config{Server: addr}})

	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) > MaxReplyBytes {
		t.Fatalf("Fetch() returned %d bytes, want at most %d", len(got), MaxReplyBytes)
	}
}

func TestClientFetch_ConnectionRefused(t *testing.T) {
	// Grab a port and close it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	client := New(Params{Config: Config{Server: addr, DialTimeout: time.Second}})

	_, err = client.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() succeeded against a closed port")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Fetch() error = %T, want *NetworkError", err)
	}
	if netErr.Op != "connect" {
		t.Fatalf("NetworkError.Op = %q, want %q", netErr.Op, "connect")
	}
}

func TestClientFetch_ReadTimeout(t *testing.T) {
	// A listener that accepts but never writes forces the read deadline.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	client := New(Params{Config: Config{
		Server:      ln.Addr().String(),
		ReadTimeout: 100 * time.Millisecond,
	}})

	_, err = client.Fetch(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Fetch() error = %v (%T), want *NetworkError", err, err)
	}
	if netErr.Op != "read" {
		t.Fatalf("NetworkError.Op = %q, want %q", netErr.Op, "read")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	if cfg.Server != "time.nist.gov:13" {
		t.Fatalf("Server = %q, want time.nist.gov:13", cfg.Server)
	}
	if cfg.DialTimeout != 10*time.Second || cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("timeouts = %v/%v, want 10s/10s", cfg.DialTimeout, cfg.ReadTimeout)
	}

	cfg = Config{Server: "127.0.0.1:13", DialTimeout: time.Second, ReadTimeout: time.Second}
	cfg.Defaults()
	if cfg.Server != "127.0.0.1:13" || cfg.DialTimeout != time.Second {
		t.Fatalf("Defaults() overwrote explicit values: %+v", cfg)
	}
}
