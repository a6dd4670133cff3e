package execution

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type AccountExecution struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Manager tracks the active report run of each account.
type Manager struct {
	accountExecutions map[string]*AccountExecution
	mutex             sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		accountExecutions: make(map[string]*AccountExecution),
	}
}

// TryStart registers a run for accountID. It returns ok=false while
// another run for the same account is active. release must be called
// once the run finishes.
func (m *Manager) TryStart(parent context.Context, accountID string) (ctx context.Context, release func(), ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.accountExecutions[accountID]; exists {
		log.Info().Str("account_id", accountID).Msg("Run already active for account")
		return nil, nil, false
	}

	ctx, cancel := context.WithCancel(parent)
	execution := &AccountExecution{
		ctx:    ctx,
		cancel: cancel,
	}
	m.accountExecutions[accountID] = execution

	release = func() {
		cancel()
		m.cleanup(accountID, execution)
	}
	return ctx, release, true
}

func (m *Manager) Active(accountID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.accountExecutions[accountID]
	return exists
}

// CancelAll cancels every active run, used on shutdown.
func (m *Manager) CancelAll() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for accountID, execution := range m.accountExecutions {
		log.Info().Str("account_id", accountID).Msg("Cancelling active run")
		execution.cancel()
	}
}

func (m *Manager) cleanup(accountID string, execution *AccountExecution) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if current, exists := m.accountExecutions[accountID]; exists && current == execution {
		delete(m.accountExecutions, accountID)
	}
}
