package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/alexanderramin/roastery/internal/llm"
)

// MemoryStore is an in-memory storage.ObjectStore serving from BaseURL.
type MemoryStore struct {
	BaseURL string
	PutErr  error

	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Deleted []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		BaseURL: "https://cdn.test/images",
		Objects: map[string][]byte{},
		Types:   map[string]string{},
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = data
	m.Types[key] = contentType
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *MemoryStore) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

func (m *MemoryStore) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, m.BaseURL+"/")
	return key, ok && key != ""
}

// StubLLM answers every Generate call with Reply (or Err) and records the
// requests it saw.
type StubLLM struct {
	Reply string
	Err   error

	mu       sync.Mutex
	Requests []llm.GenerateRequest
}

func (s *StubLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return &llm.GenerateResponse{Text: s.Reply, Model: "stub"}, nil
}

func (s *StubLLM) Available(context.Context) bool { return s.Err == nil }

// LastRequest returns the most recent request, or the zero value.
func (s *StubLLM) LastRequest() llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Requests) == 0 {
		return llm.GenerateRequest{}
	}
	return s.Requests[len(s.Requests)-1]
}
