package cmd

import (
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer(chi.NewRouter(), "8080", 10*time.Second)

	if srv.Addr != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want 0.0.0.0:8080", srv.Addr)
	}
	if srv.WriteTimeout <= 10*time.Second {
		t.Errorf("WriteTimeout = %v, want more than the feed timeout", srv.WriteTimeout)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout is unset")
	}
}
