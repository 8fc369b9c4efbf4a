package keyspace

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/redcompare/internal/config"
)

func TestBuildOptions(t *testing.T) {
	cfg := &config.KeyspaceConfig{
		Host:           "redis.example.com",
		Port:           6380,
		Password:       "secret",
		DB:             2,
		TimeoutSeconds: 5,
	}

	opts := BuildOptions(cfg)

	assert.Equal(t, "redis.example.com:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 5*time.Second, opts.ReadTimeout)
	assert.Nil(t, opts.TLSConfig)
}

func TestBuildOptions_TLS(t *testing.T) {
	cfg := &config.KeyspaceConfig{
		Host: "source.serverless.eun1.cache.amazonaws.com",
		Port: 6379,
		TLS:  true,
	}

	opts := BuildOptions(cfg)

	require.NotNil(t, opts.TLSConfig)
	assert.True(t, opts.TLSConfig.InsecureSkipVerify)
	assert.IsType(t, &tls.Config{}, opts.TLSConfig)
}

func TestBuildOptions_DefaultTimeout(t *testing.T) {
	cfg := &config.KeyspaceConfig{Host: "h", Port: 6379}

	opts := BuildOptions(cfg)

	assert.Equal(t, 10*time.Second, opts.DialTimeout)
}

func TestManager_Ping(t *testing.T) {
	src, srcMock := redismock.NewClientMock()
	dst, dstMock := redismock.NewClientMock()

	srcMock.ExpectPing().SetVal("PONG")
	dstMock.ExpectPing().SetVal("PONG")

	m := &Manager{Source: src, Destination: dst}

	err := m.Ping(context.Background())

	require.NoError(t, err)
	assert.NoError(t, srcMock.ExpectationsWereMet())
	assert.NoError(t, dstMock.ExpectationsWereMet())
}

func TestManager_Ping_SourceFailure(t *testing.T) {
	src, srcMock := redismock.NewClientMock()
	dst, _ := redismock.NewClientMock()

	srcMock.ExpectPing().SetErr(assert.AnError)

	m := &Manager{Source: src, Destination: dst}

	err := m.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "source ping failed")
}

func TestManager_Close(t *testing.T) {
	src, _ := redismock.NewClientMock()
	dst, _ := redismock.NewClientMock()

	m := &Manager{Source: src, Destination: dst}

	assert.NoError(t, m.Close())
}

func TestManager_Close_NilClients(t *testing.T) {
	m := &Manager{}

	assert.NoError(t, m.Close())
}
