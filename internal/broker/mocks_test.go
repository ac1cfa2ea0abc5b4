package broker_test

import (
	"sync"
	"time"

	"duochat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// Session store

func (m *MockStorage) CreateConnection(connectionID, userID string) (*models.Connection, error) {
	args := m.Called(connectionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockStorage) GetUserByConnectionID(connectionID string) (*models.Connection, error) {
	args := m.Called(connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockStorage) SetUserStatus(userID, status string) error {
	args := m.Called(userID, status)
	return args.Error(0)
}

// Matchmaking

func (m *MockStorage) AttemptMatch(userID, connectionID string) (*models.MatchResult, error) {
	args := m.Called(userID, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchResult), args.Error(1)
}

func (m *MockStorage) RemoveFromQueue(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Chat sessions

func (m *MockStorage) GetChatPartner(userID string) (*models.ChatPartner, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatPartner), args.Error(1)
}

func (m *MockStorage) EndChat(userID string) (*models.ChatPartner, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatPartner), args.Error(1)
}

func (m *MockStorage) HandleDisconnect(connectionID string) (*models.DisconnectResult, error) {
	args := m.Called(connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DisconnectResult), args.Error(1)
}

// Rate accounting

func (m *MockStorage) CountRecentSends(userID string, window time.Duration) (int64, error) {
	args := m.Called(userID, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) LogSend(userID string, length int) error {
	args := m.Called(userID, length)
	return args.Error(0)
}

// Moderation

func (m *MockStorage) IsUserBanned(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) BanUser(userID string, duration time.Duration) error {
	args := m.Called(userID, duration)
	return args.Error(0)
}

func (m *MockStorage) SaveComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) SumRecentComplaintWeight(targetID string, since time.Time) (int64, error) {
	args := m.Called(targetID, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockModerator is a mock implementation of broker.Moderator.
type MockModerator struct {
	mock.Mock
}

func (m *MockModerator) HandleComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

// FakeDelivery записує всі надіслані нотифікації за connectionID.
// З'єднання з Stale[id] == true поводиться як мертве.
type FakeDelivery struct {
	mu    sync.Mutex
	Stale map[string]bool
	Sent  map[string][]models.OutgoingMessage
}

func newFakeDelivery() *FakeDelivery {
	return &FakeDelivery{
		Stale: make(map[string]bool),
		Sent:  make(map[string][]models.OutgoingMessage),
	}
}

func (d *FakeDelivery) Send(connectionID string, msg models.OutgoingMessage) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Stale[connectionID] {
		return false, nil
	}
	d.Sent[connectionID] = append(d.Sent[connectionID], msg)
	return true, nil
}

func (d *FakeDelivery) messagesFor(connectionID string) []models.OutgoingMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Sent[connectionID]
}

func (d *FakeDelivery) lastFor(connectionID string) (models.OutgoingMessage, bool) {
	msgs := d.messagesFor(connectionID)
	if len(msgs) == 0 {
		return models.OutgoingMessage{}, false
	}
	return msgs[len(msgs)-1], true
}
