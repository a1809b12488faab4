package matrix

import (
	"context"
	"errors"
	"sync"
)

type MockSend struct {
	RoomID string
	Body   string
}

// MockClient is a configurable in-memory channel, implements Client.
type MockClient struct {
	mu    sync.Mutex
	Sends []MockSend

	// Succeeded and Failed count per-send outcomes.
	Succeeded int
	Failed    int

	// ConnectErr makes Connect fail when set.
	ConnectErr error

	// FailRooms lists room IDs whose sends return an error.
	FailRooms map[string]bool

	Connected    bool
	Disconnected bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Sends:     make([]MockSend, 0),
		FailRooms: make(map[string]bool),
	}
}

func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

func (m *MockClient) SendMessage(ctx context.Context, roomID, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sends = append(m.Sends, MockSend{RoomID: roomID, Body: body})

	if m.FailRooms[roomID] {
		m.Failed++
		return errors.New("mock matrix send failure")
	}
	m.Succeeded++
	return nil
}

func (m *MockClient) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Disconnected = true
}
