// Package telegramtest provides an in-process fake of the Telegram Bot API.
package telegramtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"
)

// Call is one recorded Bot API request
type Call struct {
	Method   string
	Fields   map[string]string
	FileName string
	FileData []byte
}

// FakeAPI records Bot API calls and answers them like Telegram does
type FakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    []Call
	rejected map[string]rejection
}

type rejection struct {
	code        int
	description string
}

// NewFakeAPI starts a fake Bot API server, closed with the test
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{rejected: make(map[string]rejection)}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the server URL for bot.WithServerURL
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Reject makes every call of method fail with ok=false and description
func (f *FakeAPI) Reject(method, description string) {
	f.RejectWithCode(method, http.StatusBadRequest, description)
}

// RejectWithCode is Reject with a custom error_code
func (f *FakeAPI) RejectWithCode(method string, code int, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected[method] = rejection{code: code, description: description}
}

// Calls returns the recorded calls of method, all calls if method is empty
func (f *FakeAPI) Calls(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Call
	for _, c := range f.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: path.Base(r.URL.Path), Fields: make(map[string]string)}

	if err := r.ParseMultipartForm(64 << 20); err == nil {
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				call.Fields[key] = values[0]
			}
		}
		for _, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			call.FileName = headers[0].Filename
			if file, err := headers[0].Open(); err == nil {
				call.FileData, _ = io.ReadAll(file)
				_ = file.Close()
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	rej, rejected := f.rejected[call.Method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if rejected {
		body := map[string]any{
			"ok":          false,
			"error_code":  rej.code,
			"description": rej.description,
		}
		if rej.code == http.StatusTooManyRequests {
			body["parameters"] = map[string]any{"retry_after": 3}
		}
		w.WriteHeader(rej.code)
		_ = json.NewEncoder(w).Encode(body)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":     true,
		"result": resultFor(call),
	})
}

func resultFor(call Call) any {
	switch call.Method {
	case "setWebhook", "deleteWebhook":
		return true
	case "getWebhookInfo":
		return map[string]any{
			"url":                    "https://relay.example/webhook/***",
			"has_custom_certificate": false,
			"pending_update_count":   0,
		}
	default:
		chatID, _ := strconv.ParseInt(call.Fields["chat_id"], 10, 64)
		return map[string]any{
			"message_id": 1,
			"date":       0,
			"chat":       map[string]any{"id": chatID, "type": "private"},
		}
	}
}
