package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginSuccesses  uint64
	LoginFailures   uint64
	TokensRejected  uint64
	GroupsCreated   uint64
	GroupsDeleted   uint64
	TasksCreated    uint64
	TasksCompleted  uint64
	TasksDeleted    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginSuccesses  uint64
	loginFailures   uint64
	tokensRejected  uint64
	groupsCreated   uint64
	groupsDeleted   uint64
	tasksCreated    uint64
	tasksCompleted  uint64
	tasksDeleted    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		TokensRejected:  atomic.LoadUint64(&m.tokensRejected),
		GroupsCreated:   atomic.LoadUint64(&m.groupsCreated),
		GroupsDeleted:   atomic.LoadUint64(&m.groupsDeleted),
		TasksCreated:    atomic.LoadUint64(&m.tasksCreated),
		TasksCompleted:  atomic.LoadUint64(&m.tasksCompleted),
		TasksDeleted:    atomic.LoadUint64(&m.tasksDeleted),
	}
}

// IncUserRegistered increments the registered users counter.
func (m *InMemoryRecorder) IncUserRegistered() { atomic.AddUint64(&m.usersRegistered, 1) }

// IncLoginSuccess increments the successful logins counter.
func (m *InMemoryRecorder) IncLoginSuccess() { atomic.AddUint64(&m.loginSuccesses, 1) }

// IncLoginFailure increments the failed logins counter.
func (m *InMemoryRecorder) IncLoginFailure() { atomic.AddUint64(&m.loginFailures, 1) }

// IncTokenRejected increments the rejected tokens counter.
func (m *InMemoryRecorder) IncTokenRejected() { atomic.AddUint64(&m.tokensRejected, 1) }

// IncGroupCreated increments the groups created counter.
func (m *InMemoryRecorder) IncGroupCreated() { atomic.AddUint64(&m.groupsCreated, 1) }

// IncGroupDeleted increments the groups deleted counter.
func (m *InMemoryRecorder) IncGroupDeleted() { atomic.AddUint64(&m.groupsDeleted, 1) }

// IncTaskCreated increments the tasks created counter.
func (m *InMemoryRecorder) IncTaskCreated() { atomic.AddUint64(&m.tasksCreated, 1) }

// IncTaskCompleted increments the tasks completed counter.
func (m *InMemoryRecorder) IncTaskCompleted() { atomic.AddUint64(&m.tasksCompleted, 1) }

// IncTaskDeleted increments the tasks deleted counter.
func (m *InMemoryRecorder) IncTaskDeleted() { atomic.AddUint64(&m.tasksDeleted, 1) }
