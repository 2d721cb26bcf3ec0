package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gitlab.com/budgetku/budget-tracker/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

type account struct {
	userID       string
	name         string
	passwordHash []byte
}

// MemoryProvider is an in-process Provider with bcrypt-hashed credentials.
// It backs local runs and tests; a hosted identity service satisfies the
// same interface in deployment.
type MemoryProvider struct {
	mu       sync.Mutex
	accounts map[string]account // keyed by email
	current  string
	changes  chan Change
}

var _ Provider = (*MemoryProvider)(nil)

// NewMemoryProvider creates an empty provider with no signed-in user.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]account),
		changes:  make(chan Change, 1),
	}
}

// SignIn implements Provider.
func (p *MemoryProvider) SignIn(_ context.Context, email, password string) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[email]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	p.setCurrentLocked(acc.userID)
	return Session{UserID: acc.userID, Email: email, Name: acc.name}, nil
}

// SignUp implements Provider. A successful sign-up leaves the new user
// signed in, matching the sign-in-after-register flow.
func (p *MemoryProvider) SignUp(_ context.Context, name, email, password string) (Session, error) {
	if len(password) < MinPasswordLength {
		return Session{}, ErrWeakPassword
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[email]; ok {
		return Session{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	acc := account{userID: uuid.NewString(), name: name, passwordHash: hash}
	p.accounts[email] = acc
	p.setCurrentLocked(acc.userID)

	logger.Log.Info().Str("user_hash", logger.HashUserID(acc.userID)).Msg("User registered")
	return Session{UserID: acc.userID, Email: email, Name: name}, nil
}

// SignOut implements Provider.
func (p *MemoryProvider) SignOut() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setCurrentLocked("")
}

// CurrentUserID implements Provider.
func (p *MemoryProvider) CurrentUserID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Changes implements Provider.
func (p *MemoryProvider) Changes() <-chan Change {
	return p.changes
}

func (p *MemoryProvider) setCurrentLocked(userID string) {
	if p.current == userID {
		return
	}
	p.current = userID

	change := Change{UserID: userID}
	for {
		select {
		case p.changes <- change:
			return
		default:
		}
		select {
		case <-p.changes:
		default:
		}
	}
}
