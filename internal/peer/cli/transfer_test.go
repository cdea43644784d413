package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/foldersync/internal/config"
	"github.com/iudanet/foldersync/internal/peer/transport"
	"github.com/iudanet/foldersync/internal/relay"
	"github.com/iudanet/foldersync/internal/relay/storage/sqlite"
)

var shareCodeLine = regexp.MustCompile(`Share code: ([A-Z0-9]{8})`)

func newTestRelayURL(t *testing.T) string {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)

	srv := relay.New(&config.Relay{
		SessionTTL:      15 * time.Minute,
		JoinRate:        100,
		JoinWindow:      time.Minute,
		MaxJoinFailures: 5,
		BanDuration:     time.Minute,
	}, store, []byte("cli-test-secret"), testLogger())
	httpSrv := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		srv.Close()
		httpSrv.Close()
		_ = store.Close()
	})
	return httpSrv.URL
}

func TestCli_SendReceive(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	relayURL := newTestRelayURL(t)

	source := t.TempDir()
	writeFile(t, source, "notes.txt", []byte("hello from the sender"))
	writeFile(t, source, "data/blob.bin", bytes.Repeat([]byte("0123456789"), 50_000))
	require.NoError(t, os.MkdirAll(filepath.Join(source, "empty"), 0o755))

	target := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, os.MkdirAll(target, 0o755))
	// лишний файл дает предупреждение, но не ошибку
	writeFile(t, target, "stale.txt", []byte("left over"))

	senderCfg := testConfig()
	senderCfg.RelayURL = relayURL
	senderCfg.Username = "alice"
	senderStore := newTestStorage(t)
	senderOut, senderBuf := newTestIO()
	sender := New(senderCfg, senderOut, senderStore, senderStore,
		transport.NewClient(relayURL, testLogger()), testLogger(), true)

	sendErr := make(chan error, 1)
	go func() {
		sendErr <- sender.Run(ctx, "send", []string{"-yes", source})
	}()

	var code string
	require.Eventually(t, func() bool {
		m := shareCodeLine.FindStringSubmatch(senderBuf.String())
		if m == nil {
			return false
		}
		code = m[1]
		return true
	}, 10*time.Second, 10*time.Millisecond)

	receiverCfg := testConfig()
	receiverCfg.RelayURL = relayURL
	receiverCfg.Username = "bob"
	receiverStore := newTestStorage(t)

	var (
		receiverBuf *safeBuffer
		receiveErr  error
	)
	// отправитель регистрируется на relay чуть позже, чем печатает код
	require.Eventually(t, func() bool {
		out, buf := newTestIO()
		receiver := New(receiverCfg, out, receiverStore, receiverStore,
			transport.NewClient(relayURL, testLogger()), testLogger(), true)

		err := receiver.Run(ctx, "receive", []string{target, strings.ToLower(code)})
		if err != nil && strings.Contains(err.Error(), "(409)") {
			return false
		}
		receiverBuf, receiveErr = buf, err
		return true
	}, 10*time.Second, 20*time.Millisecond)
	require.NoError(t, receiveErr)

	select {
	case err := <-sendErr:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("sender did not finish")
	}

	for _, rel := range []string{"notes.txt", "data/blob.bin"} {
		want, err := os.ReadFile(filepath.Join(source, filepath.FromSlash(rel)))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(target, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, want, got, rel)
	}
	assert.DirExists(t, filepath.Join(target, "empty"))

	assert.Contains(t, senderBuf.String(), "✓ Transfer completed")
	assert.Contains(t, senderBuf.String(), "Peer:        bob")
	assert.Contains(t, receiverBuf.String(), "✓ Transfer completed")
	assert.Contains(t, receiverBuf.String(), "File not in manifest: stale.txt")

	// манифест отправителя попал в кеш
	records, err := senderStore.ListManifests(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Manifest.FileCount())
}
