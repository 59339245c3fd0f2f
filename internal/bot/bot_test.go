package bot

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const testToken = "test-token"

type telegramStub struct {
	mu       sync.Mutex
	chatIDs  []string
	texts    []string
	failSend bool
}

func (s *telegramStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"test","username":"test_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			r.ParseForm()
			s.mu.Lock()
			s.chatIDs = append(s.chatIDs, r.FormValue("chat_id"))
			s.texts = append(s.texts, r.FormValue("text"))
			s.mu.Unlock()

			if s.failSend {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":12345,"type":"private"}}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newStubNotifier(t *testing.T, stub *telegramStub, chatID string, logOut io.Writer) *Notifier {
	t.Helper()

	server := httptest.NewServer(stub.handler(t))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(logOut, nil))
	botAPI, err := NewBotAPI(testToken, server.URL+"/bot%s/%s", logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := NewNotifier(botAPI, chatID, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return n
}

func TestNotifier_SendSuccess(t *testing.T) {
	stub := &telegramStub{}
	n := newStubNotifier(t, stub, "12345", io.Discard)

	n.SendMessage("hello from test")

	if len(stub.texts) != 1 {
		t.Fatalf("expected 1 message, got %d", len(stub.texts))
	}
	if stub.chatIDs[0] != "12345" {
		t.Errorf("expected chat_id 12345, got %s", stub.chatIDs[0])
	}
	if stub.texts[0] != "hello from test" {
		t.Errorf("expected text 'hello from test', got %s", stub.texts[0])
	}
}

func TestNotifier_SendToChannel(t *testing.T) {
	stub := &telegramStub{}
	n := newStubNotifier(t, stub, "@homework_channel", io.Discard)

	n.SendMessage("hello channel")

	if len(stub.chatIDs) != 1 || stub.chatIDs[0] != "@homework_channel" {
		t.Errorf("expected chat_id @homework_channel, got %v", stub.chatIDs)
	}
}

func TestNotifier_SendErrorIsSwallowed(t *testing.T) {
	stub := &telegramStub{failSend: true}
	var logs bytes.Buffer
	n := newStubNotifier(t, stub, "12345", &logs)

	n.SendMessage("will fail")

	if len(stub.texts) != 1 {
		t.Errorf("expected exactly one attempt without retry, got %d", len(stub.texts))
	}
	if !strings.Contains(logs.String(), "ошибка отправки сообщения") {
		t.Errorf("expected delivery error in logs, got: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "chat not found") {
		t.Errorf("expected API description in logs, got: %s", logs.String())
	}
}

func TestNewNotifier_InvalidChatID(t *testing.T) {
	for _, chatID := range []string{"", "chat", "@", "12a"} {
		if _, err := NewNotifier(nil, chatID, slog.Default()); !errors.Is(err, ErrInvalidChatID) {
			t.Errorf("chat id %q: expected ErrInvalidChatID, got %v", chatID, err)
		}
	}
}

func TestNewBotAPI_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	botAPI, err := NewBotAPI("bad-token", server.URL+"/bot%s/%s", slog.New(slog.NewTextHandler(&logs, nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if botAPI == nil {
		t.Fatal("expected bot API client")
	}
	if !strings.Contains(logs.String(), "Unauthorized") {
		t.Errorf("expected getMe failure in logs, got: %s", logs.String())
	}
}

func TestNewBotAPI_TelegramUnreachable(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	botAPI, err := NewBotAPI("123:abc", "http://127.0.0.1:1/bot%s/%s", logger)
	if err != nil {
		t.Fatalf("startup must not fail when Telegram is unreachable: %v", err)
	}
	if !strings.Contains(logs.String(), "не удалось проверить авторизацию бота") {
		t.Errorf("expected getMe failure in logs, got: %s", logs.String())
	}

	n, err := NewNotifier(botAPI, "12345", logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n.SendMessage(StartMessage)

	if !strings.Contains(logs.String(), "ошибка отправки сообщения") {
		t.Errorf("expected swallowed delivery error in logs, got: %s", logs.String())
	}
}
