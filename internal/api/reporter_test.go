// ABOUTME: Tests for reporter-name resolution
// ABOUTME: Covers X-Forwarded-For parsing, DNS fallback, and missing addresses

package api

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterName_LookupFailureFallsBackToIP(t *testing.T) {
	restore := lookupAddr
	lookupAddr = func(addr string) ([]string, error) {
		return nil, errors.New("no PTR record")
	}
	t.Cleanup(func() { lookupAddr = restore })

	s := &Server{}
	req := httptest.NewRequest("POST", "/suggest/mistakes", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7")

	assert.Equal(t, "10.0.0.7", s.reporterName(req))
}

func TestReporterName_FirstForwardedAddressWins(t *testing.T) {
	restore := lookupAddr
	var looked string
	lookupAddr = func(addr string) ([]string, error) {
		looked = addr
		return []string{"host-a.lan."}, nil
	}
	t.Cleanup(func() { lookupAddr = restore })

	s := &Server{}
	req := httptest.NewRequest("POST", "/suggest/mistakes", nil)
	req.Header.Set("X-Forwarded-For", " 10.0.0.7 , 172.16.0.1")

	assert.Equal(t, "host-a.lan", s.reporterName(req))
	assert.Equal(t, "10.0.0.7", looked)
}

func TestReporterName_NoForwardedHeaderUsesRemoteAddr(t *testing.T) {
	restore := lookupAddr
	lookupAddr = func(addr string) ([]string, error) {
		return nil, errors.New("no PTR record")
	}
	t.Cleanup(func() { lookupAddr = restore })

	s := &Server{}
	req := httptest.NewRequest("POST", "/suggest/mistakes", nil)
	// httptest sets RemoteAddr to 192.0.2.1:1234

	assert.Equal(t, "192.0.2.1", s.reporterName(req))
}
