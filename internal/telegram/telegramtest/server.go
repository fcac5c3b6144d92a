// Package telegramtest provides a fake Bot API server for handler tests.
package telegramtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
)

const Token = "123456:TEST"

// Request is one recorded Bot API call.
type Request struct {
	Method string
	Fields map[string]string
}

// Server records Bot API calls and answers them with canned results.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	failing  map[string]bool
	nextID   int
}

// NewServer starts a fake Bot API and returns it with a bot pointed at it.
func NewServer(t *testing.T) (*Server, *bot.Bot) {
	t.Helper()

	s := &Server{failing: make(map[string]bool), nextID: 100}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	b, err := bot.New(Token, bot.WithServerURL(s.URL), bot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("create bot: %v", err)
	}
	return s, b
}

// Fail makes every call to method return an API error.
func (s *Server) Fail(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[method] = true
}

// Requests returns the recorded calls to method, or all calls if method is empty.
func (s *Server) Requests(method string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, r := range s.requests {
		if method == "" || r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	fields := make(map[string]string)
	if err := r.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{Method: method, Fields: fields})
	failing := s.failing[method]
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failing {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  400,
			"description": "Bad Request: test failure",
		})
		return
	}

	var result any = true
	switch method {
	case "sendMessage", "editMessageReplyMarkup", "editMessageText":
		result = map[string]any{
			"message_id": id,
			"date":       0,
			"chat":       map[string]any{"id": json.Number(fields["chat_id"]), "type": "group"},
			"text":       fields["text"],
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}
