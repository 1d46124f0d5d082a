package healthprobe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ghuser/itemtracker/pkg/httpx"
)

func TestProbe_Healthy(t *testing.T) {
	srv := httptest.NewServer(httpx.LivenessHandler())
	defer srv.Close()

	err := Probe(context.Background(), srv.URL+"/healthcheck")
	if err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	if ExitCode(err) != 0 {
		t.Fatal("expected exit code 0")
	}
}

func TestProbe_NonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusServiceUnavailable, http.StatusNotFound, http.StatusNoContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		err := Probe(context.Background(), srv.URL)
		srv.Close()

		if !errors.Is(err, ErrUnhealthy) {
			t.Errorf("status %d: expected ErrUnhealthy, got %v", status, err)
		}
		if ExitCode(err) != 1 {
			t.Errorf("status %d: expected exit code 1", status)
		}
	}
}

func TestProbe_ConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	err = Probe(context.Background(), "http://"+addr+"/healthcheck")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if errors.Is(err, ErrUnhealthy) {
		t.Fatalf("connection failure should not be reported as a status error: %v", err)
	}
	if ExitCode(err) != 1 {
		t.Fatal("expected exit code 1")
	}
}

func TestProbe_SingleRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_ = Probe(context.Background(), srv.URL)

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}
