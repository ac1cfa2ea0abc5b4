package broker

import (
	"sync"

	"duochat/backend/internal/models"
)

// Registry веде локальну таблицю живих з'єднань процесу. Реалізує Delivery:
// надсилання на відсутнє або переповнене з'єднання повідомляється як stale,
// без блокування і без повторних спроб.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewRegistry Constructor
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
	}
}

// Add реєструє клієнта за його ConnectionID.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.GetConnectionID()] = c
}

// Remove прибирає клієнта з таблиці. Наступні Send на цей ConnectionID
// повертатимуть stale.
func (r *Registry) Remove(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, connectionID)
}

// Len повертає кількість живих з'єднань.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Send робить одну спробу доставки. Переповнений буфер означає, що клієнт
// давно не читає, тож з'єднання вважається мертвим, як і відсутнє.
func (r *Registry) Send(connectionID string, msg models.OutgoingMessage) (bool, error) {
	r.mu.RLock()
	c, ok := r.clients[connectionID]
	r.mu.RUnlock()

	if !ok {
		return false, nil
	}

	select {
	case c.GetSendChannel() <- msg:
		return true, nil
	default:
		return false, nil
	}
}
