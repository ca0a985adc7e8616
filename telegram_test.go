package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	require.NoError(t, os.WriteFile(path, []byte("  123:abc\n"), 0o600))

	token, err := readToken(path)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)

	_, err = readToken(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTelegramNotifier(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":5,"type":"private"}}}`))
	}))
	defer srv.Close()

	b, err := bot.New("123:abc", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	n := &telegramNotifier{bot: b}

	err = n.Notify(context.Background(), 5, Reply{
		Text:     "Ticket booked successfully!",
		Document: &Document{Filename: "ticket_AB12CD34.html", Data: []byte("<html></html>")},
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"sendMessage", "sendDocument"}, methods)
}
