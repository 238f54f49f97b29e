package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryOracleMember(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"0x1111111111111111111111111111111111111111"},{"id":"0x2222222222222222222222222222222222222222"}]`))
	}))
	defer srv.Close()

	oracle := NewDirectoryOracle(srv.URL, time.Second)

	member, err := oracle.IsMember(context.Background(), addr)
	require.NoError(t, err)
	assert.True(t, member)

	other := common.HexToAddress("0x9999999999999999999999999999999999999999")
	member, err = oracle.IsMember(context.Background(), other)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestDirectoryOracleCaseInsensitiveMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"0xABCDEF0123456789ABCDEF0123456789ABCDEF01"}]`))
	}))
	defer srv.Close()

	oracle := NewDirectoryOracle(srv.URL, time.Second)
	member, err := oracle.IsMember(context.Background(), common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01"))
	require.NoError(t, err)
	assert.True(t, member)
}

func TestDirectoryOracleNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	oracle := NewDirectoryOracle(srv.URL, time.Second)
	member, err := oracle.IsMember(context.Background(), common.Address{})
	assert.Error(t, err)
	assert.False(t, member)
}

func TestDirectoryOracleBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	oracle := NewDirectoryOracle(srv.URL, time.Second)
	member, err := oracle.IsMember(context.Background(), common.Address{})
	assert.Error(t, err)
	assert.False(t, member)
}

func TestDirectoryOracleUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	oracle := NewDirectoryOracle(srv.URL, 500*time.Millisecond)
	member, err := oracle.IsMember(context.Background(), common.Address{})
	assert.Error(t, err)
	assert.False(t, member)
}
