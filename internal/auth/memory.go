package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/taskboard/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type memoryUser struct {
	user domain.User
	hash []byte
}

// MemoryProvider keeps users and sessions in process memory. It backs
// AUTH_BACKEND=memory and the tests.
type MemoryProvider struct {
	mu       sync.RWMutex
	users    map[string]*memoryUser // keyed by lower-cased email
	sessions map[string]domain.SessionRecord
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryProvider creates an empty provider issuing sessions valid for ttl.
func NewMemoryProvider(ttl time.Duration) *MemoryProvider {
	return &MemoryProvider{
		users:    make(map[string]*memoryUser),
		sessions: make(map[string]domain.SessionRecord),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SignUp registers a new user with a bcrypt password hash.
func (p *MemoryProvider) SignUp(ctx context.Context, email, name, password string) (*domain.User, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.users[key]; exists {
		return nil, domain.ErrUserAlreadyExists
	}
	u := &memoryUser{
		user: domain.User{ID: "user:" + uuid.NewString(), Email: email, Name: name},
		hash: hash,
	}
	p.users[key] = u
	return &u.user, nil
}

// SignIn checks credentials and opens a new session.
func (p *MemoryProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p.mu.RLock()
	u, ok := p.users[strings.ToLower(strings.TrimSpace(email))]
	p.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return nil, err
	}
	now := p.now()
	rec := domain.SessionRecord{Token: token, UserID: u.user.ID, CreatedAt: now, ExpiresAt: now.Add(p.ttl)}

	p.mu.Lock()
	p.sessions[token] = rec
	p.mu.Unlock()

	return NewSession(u.user, token, rec.ExpiresAt, p), nil
}

// Resume returns the live session for token.
func (p *MemoryProvider) Resume(ctx context.Context, token string) (*Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rec, ok := p.sessions[token]
	if !ok || rec.Expired(p.now()) {
		return nil, domain.ErrSessionNotFound
	}
	for _, u := range p.users {
		if u.user.ID == rec.UserID {
			return NewSession(u.user, token, rec.ExpiresAt, p), nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

// End forgets the session. Ending an unknown token is a no-op.
func (p *MemoryProvider) End(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	return nil
}

// ActiveSessions reports how many unexpired sessions exist.
func (p *MemoryProvider) ActiveSessions() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	now := p.now()
	n := 0
	for _, rec := range p.sessions {
		if !rec.Expired(now) {
			n++
		}
	}
	return n
}
