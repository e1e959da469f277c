package app

import (
	"net/http"
	"reflect"
	"testing"
	"time"
)

func TestNewHTTPClient_Config(t *testing.T) {
	c := newHTTPClient(7 * time.Second)
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if tr.TLSHandshakeTimeout != 7*time.Second {
		t.Fatalf("expected handshake bounded by timeout, got %v", tr.TLSHandshakeTimeout)
	}
	if tr.Proxy == nil {
		t.Fatalf("expected proxy from environment")
	}
	// Ensure we didn't return the default client's transport
	if reflect.ValueOf(http.DefaultTransport).Pointer() == reflect.ValueOf(tr).Pointer() {
		t.Fatalf("transport should not be default")
	}
}
