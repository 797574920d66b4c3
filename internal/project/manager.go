package project

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"design_ai_server/internal/design"
)

// ctaMargin: NextPageType keeps suggesting detail pages while discovered
// calls-to-action outnumber built pages by more than this.
const ctaMargin = 2

// Manager sequences multi-page generation runs over an injected Store.
// Mutations are serialized per session id with a keyed mutex, so two
// concurrent RecordPage calls for the same session cannot pop the same
// queue head or double-count the page counter; operations on different
// sessions proceed fully in parallel.
type Manager struct {
	store Store
	ttl   time.Duration

	planRules   []PlanRule
	actionRules []ActionRule

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	cron *cron.Cron
}

// NewManager creates a Manager over the given store. Retention defaults to
// 24h when ttl is zero. Rule tables are the package defaults; swap them with
// the setters below before serving traffic if a deployment needs its own.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store: store,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

// SetPlanRules replaces the page-sequence inference table.
func (m *Manager) SetPlanRules(rules []PlanRule) { m.planRules = rules }

// SetActionRules replaces the action inference table.
func (m *Manager) SetActionRules(rules []ActionRule) { m.actionRules = rules }

// StartSweeper schedules the periodic expiry sweep. Call Close on shutdown.
func (m *Manager) StartSweeper(interval time.Duration) {
	if m.cron != nil {
		return
	}
	m.cron = cron.New()
	_, err := m.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		m.Sweep(context.Background())
	})
	if err != nil {
		log.Printf("Failed to schedule session sweep: %v", err)
		return
	}
	m.cron.Start()
	log.Printf("Session expiry sweeper started (every %s, retention %s)", interval, m.ttl)
}

// Close stops the sweeper. Safe to call when StartSweeper never ran.
func (m *Manager) Close() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

// Sweep removes every session whose retention window has passed and returns
// the number removed. For the Redis store this is a no-op (key TTLs expire
// sessions natively).
func (m *Manager) Sweep(ctx context.Context) int {
	ids, err := m.store.ExpiredIDs(ctx, time.Now())
	if err != nil {
		log.Printf("WARN: session sweep failed to list expired ids: %v", err)
		return 0
	}
	for _, id := range ids {
		if err := m.Expire(ctx, id); err != nil {
			log.Printf("WARN: session sweep failed to expire %s: %v", id, err)
		}
	}
	if len(ids) > 0 {
		log.Printf("Session sweep removed %d expired session(s)", len(ids))
	}
	return len(ids)
}

// Initialize creates and registers a new session. When pageTypes is empty
// the sequence is inferred from the description via the plan rule table.
func (m *Manager) Initialize(ctx context.Context, name, description string, pageTypes []string) (*Session, error) {
	if len(pageTypes) == 0 {
		pageTypes = PlanPages(description, m.planRules)
	}

	now := time.Now()
	s := &Session{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
		PendingPages: append([]string(nil), pageTypes...),
	}

	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	log.Printf("Initialized project session %s (%q) with pages %v", s.ID, name, pageTypes)
	return s, nil
}

// NextPageType returns the next page type to generate for the session, or
// "" once no more pages are needed. The pending queue head wins; with an
// empty queue, unresolved calls-to-action keep detail pages coming until
// built pages catch up. Reaching the terminal signal transitions the
// session to completed.
func (m *Manager) NextPageType(ctx context.Context, id string) (string, error) {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	next := nextPageFor(s)
	if next == "" && s.Status == StatusActive {
		s.Status = StatusCompleted
		s.UpdatedAt = time.Now()
		if err := m.store.Put(ctx, s); err != nil {
			return "", fmt.Errorf("failed to mark session completed: %w", err)
		}
		log.Printf("Project session %s completed after %d page(s)", id, s.PagesBuilt)
	}
	return next, nil
}

func nextPageFor(s *Session) string {
	if len(s.PendingPages) > 0 {
		return s.PendingPages[0]
	}
	if len(s.Interactive) > s.PagesBuilt+ctaMargin {
		return PageDetail
	}
	return ""
}

// RecordPage folds a generated page back into the session: appends the page,
// removes one matching pending entry, merges the palette (first-writer-wins)
// and extracts interactive elements from the first frame's direct children.
// Completed sessions reject further pages with ErrSessionCompleted.
func (m *Manager) RecordPage(ctx context.Context, id, pageType string, doc *design.Document) (*Session, error) {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status == StatusCompleted {
		return nil, ErrSessionCompleted
	}

	now := time.Now()
	s.Pages = append(s.Pages, Page{
		Type:      pageType,
		Name:      pageType + " page",
		Document:  doc,
		CreatedAt: now,
	})
	s.PendingPages = removeFirst(s.PendingPages, pageType)
	s.PagesBuilt++
	s.UpdatedAt = now

	mergeDesignSystem(&s.DesignSystem, doc)
	s.Interactive = append(s.Interactive, extractInteractive(doc, pageType, m.actionRules)...)

	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to record page: %w", err)
	}

	log.Printf("Recorded %s page for session %s (%d built, %d pending, %d interactive)",
		pageType, id, s.PagesBuilt, len(s.PendingPages), len(s.Interactive))
	return s, nil
}

// Status returns a read-only snapshot, or ErrSessionNotFound for unknown and
// expired ids alike.
func (m *Manager) Status(ctx context.Context, id string) (*Snapshot, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		Status:           s.Status,
		PagesBuilt:       s.PagesBuilt,
		PendingPages:     s.PendingPages,
		DesignSystem:     s.DesignSystem,
		InteractiveCount: len(s.Interactive),
		CreatedAt:        s.CreatedAt,
		ExpiresAt:        s.ExpiresAt,
	}, nil
}

// Expire removes the session from the store. Idempotent: expiring an absent
// session is not an error. An in-flight RecordPage racing an expiry may
// complete against its own copy; the write lands on a deleted key and the
// next lookup reports not found, which is the accepted resolution.
func (m *Manager) Expire(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to expire session %s: %w", id, err)
	}
	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()
	return nil
}

// sessionLock returns the mutex serializing mutations for one session id,
// creating it on first use.
func (m *Manager) sessionLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	return lock
}

// removeFirst removes the first occurrence of v, keeping the rest in order.
func removeFirst(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// mergeDesignSystem folds a page's dominant colors into the summary.
// First-writer-wins: fields already set are never overridden, so the first
// generated page establishes the project palette.
func mergeDesignSystem(ds *DesignSystem, doc *design.Document) {
	if doc == nil || len(doc.Frames) == 0 {
		return
	}
	first := doc.Frames[0]
	if ds.BackgroundColor == "" && first.Background != "" {
		ds.BackgroundColor = first.Background
	}
	if ds.PrimaryColor == "" {
		for _, el := range first.Children {
			if el.Type == design.ElementButton && el.Background != "" {
				ds.PrimaryColor = el.Background
				break
			}
		}
	}
}

// extractInteractive collects buttons and inputs among the direct children
// of the first frame only — no deep recursion, top-level calls-to-action are
// what drive follow-up page inference.
func extractInteractive(doc *design.Document, pageType string, rules []ActionRule) []InteractiveElement {
	if doc == nil || len(doc.Frames) == 0 {
		return nil
	}
	var out []InteractiveElement
	for _, el := range doc.Frames[0].Children {
		if el.Type != design.ElementButton && el.Type != design.ElementInput {
			continue
		}
		label := el.DisplayText()
		out = append(out, InteractiveElement{
			Kind:   el.Type,
			Label:  label,
			Action: InferAction(label, rules),
			Page:   pageType,
		})
	}
	return out
}
