// Package session owns live coaching sessions from initialization through
// finalization, coordinating context gathering, requirement extraction and
// plan building before handing durable state to the store.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aminmotiwala/atic/internal/dialogue"
	"github.com/aminmotiwala/atic/internal/extract"
	"github.com/aminmotiwala/atic/internal/logging"
	"github.com/aminmotiwala/atic/internal/plan"
	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

// Manager coordinates the session lifecycle. It holds the only live copy of
// each active session; finalized sessions are handed to the store by value
// and removed from the active set.
type Manager struct {
	store    *store.Store
	provider dialogue.Provider
	log      *logging.Logger

	mu      sync.Mutex
	active  map[string]*types.Session
	history []*types.Session
}

// NewManager creates a Manager over the given store and dialogue provider.
func NewManager(st *store.Store, provider dialogue.Provider, log *logging.Logger) *Manager {
	return &Manager{
		store:    st,
		provider: provider,
		log:      log,
		active:   make(map[string]*types.Session),
	}
}

// Initialize creates a new session and runs the four initialization steps in
// strict sequence: experience gathering, job description gathering,
// requirement extraction and plan building. A failure in any step marks the
// session failed with the error recorded, but the partial session is still
// registered in the active set and no error is returned to the caller.
func (m *Manager) Initialize(ctx context.Context) *types.Session {
	session := &types.Session{
		ID:        GenerateSessionID(time.Now().UTC()),
		Status:    types.StatusInitializing,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.runInitSteps(ctx, session); err != nil {
		m.log.Warn("session initialization failed",
			"session_id", session.ID, "error", err)
		session.Status = types.StatusFailed
		session.Error = err.Error()
		m.register(session)
		return session
	}

	session.Status = types.StatusInitialized

	// Persist before the session is visible in the active set, so the store
	// serializes a snapshot no concurrent RecordInteraction can mutate.
	// Persistence failures do not fail initialization; the session stays
	// usable in memory and completion writes the full record.
	if err := m.store.CreateSession(ctx, session); err != nil {
		m.log.Warn("failed to persist initialized session",
			"session_id", session.ID, "error", err)
	}
	m.register(session)

	m.log.Info("session initialized",
		"session_id", session.ID,
		"user_id", session.Profile.UserID,
		"phases", len(session.Plan.Phases),
		"difficulty", session.Profile.DifficultyLevel)
	return session
}

func (m *Manager) runInitSteps(ctx context.Context, session *types.Session) error {
	experience, err := m.provider.GatherExperience(ctx)
	if err != nil {
		return fmt.Errorf("experience assessment failed: %w", err)
	}
	session.Profile.Experience = *experience

	job, err := m.provider.GatherTargetJob(ctx)
	if err != nil {
		return fmt.Errorf("job description gathering failed: %w", err)
	}
	session.Profile.TargetJob = job

	session.Requirements = extract.Extract(job.Description)
	session.Plan = plan.Build(*experience, session.Requirements)
	session.Profile.DifficultyLevel = plan.InitialDifficulty(*experience, session.Requirements)
	return nil
}

func (m *Manager) register(session *types.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[session.ID] = session
}

// Get returns the active session with the given id, or nil when the id is
// not in the active set.
func (m *Manager) Get(sessionID string) *types.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[sessionID]
}

// History returns the sessions finalized by this manager, oldest first.
// It reflects only this process; the durable record lives in the store.
func (m *Manager) History() []*types.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*types.Session, len(m.history))
	copy(out, m.history)
	return out
}

// ActiveCount returns the number of sessions in the active set.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// UpdateStatus sets the status of an active session. It reports false when
// the session is not in the active set.
func (m *Manager) UpdateStatus(sessionID string, status types.SessionStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.active[sessionID]
	if !ok {
		return false
	}
	session.Status = status
	return true
}

// RecordInteraction appends an interaction entry to an active session's log.
// It reports false when the session is not in the active set.
func (m *Manager) RecordInteraction(sessionID, source, interactionType string, payload map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.active[sessionID]
	if !ok {
		return false
	}
	session.Interactions = append(session.Interactions, types.Interaction{
		Timestamp: time.Now().UTC(),
		Source:    source,
		Type:      interactionType,
		Payload:   payload,
	})
	return true
}

// AttachPerformance sets the performance analysis on an active session so
// finalization can fan it out into metric rows. It reports false when the
// session is not active.
func (m *Manager) AttachPerformance(sessionID string, analysis *types.PerformanceAnalysis) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.active[sessionID]
	if !ok {
		return false
	}
	session.Performance = analysis
	return true
}

// Finalize completes an active session: it is removed from the active set,
// stamped with a completion time and persisted with its performance metrics.
// Finalizing an unknown id is a no-op returning nil.
func (m *Manager) Finalize(ctx context.Context, sessionID string) *types.Session {
	m.mu.Lock()
	session, ok := m.active[sessionID]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	delete(m.active, sessionID)

	now := time.Now().UTC()
	session.Status = types.StatusCompleted
	session.CompletedAt = &now
	m.history = append(m.history, session)
	m.mu.Unlock()

	if err := m.store.CompleteSession(ctx, session); err != nil {
		m.log.Error("failed to persist completed session",
			"session_id", session.ID, "error", err)
	} else {
		m.log.Info("session finalized",
			"session_id", session.ID, "user_id", session.Profile.UserID)
	}
	return session
}

// GenerateSessionID builds a session id with a time-based prefix and a uuid
// fragment.
func GenerateSessionID(now time.Time) string {
	return fmt.Sprintf("atic_%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8])
}
