package httpclient

import (
	"net"
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	client := NewSaferClient(10 * time.Second)

	t.Run("allows public https", func(t *testing.T) {
		if _, err := client.ValidateURL("https://nominatim.openstreetmap.org/search"); err != nil {
			t.Errorf("expected public https URL to pass, got %v", err)
		}
	})

	t.Run("blocks localhost", func(t *testing.T) {
		if _, err := client.ValidateURL("http://localhost:8080/"); err == nil {
			t.Error("expected localhost to be blocked")
		}
	})

	t.Run("blocks private IP", func(t *testing.T) {
		if _, err := client.ValidateURL("http://192.168.1.1/"); err == nil {
			t.Error("expected private IP to be blocked")
		}
	})

	t.Run("blocks file scheme", func(t *testing.T) {
		if _, err := client.ValidateURL("file:///etc/passwd"); err == nil {
			t.Error("expected file scheme to be blocked")
		}
	})

	t.Run("blocks credential injection", func(t *testing.T) {
		if _, err := client.ValidateURL("http://evil.com@localhost/"); err == nil {
			t.Error("expected @ in URL to be blocked")
		}
	})
}

func TestValidateURLWithPrivateAllowed(t *testing.T) {
	allow := false
	client := NewSaferClientWithOptions(10*time.Second, SaferClientOptions{
		BlockPrivateIP: &allow,
	})

	if _, err := client.ValidateURL("http://localhost:11434/v1/chat/completions"); err != nil {
		t.Errorf("expected localhost to pass with blocking disabled, got %v", err)
	}
}

func TestIsPrivateIP(t *testing.T) {
	cases := []struct {
		ip      string
		private bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"::1", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"2001:db8::1", true},
		{"2606:4700:4700::1111", false},
	}

	for _, tc := range cases {
		ip := net.ParseIP(tc.ip)
		if ip == nil {
			t.Fatalf("bad test IP %q", tc.ip)
		}
		if got := isPrivateIP(ip); got != tc.private {
			t.Errorf("isPrivateIP(%s) = %v, want %v", tc.ip, got, tc.private)
		}
	}
}
