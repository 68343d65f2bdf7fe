// Package relay is the in-memory state behind the development relay:
// companies, the paired messaging session and the delivery log.
package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
	"github.com/google/uuid"
)

// placeholderPNG is a 1x1 transparent PNG handed out as the pairing QR code.
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// PairedPhone is the number the fake session reports once paired.
const PairedPhone = "5511999990000"

type Store struct {
	mu sync.RWMutex

	companies []*models.Company
	logs      []*models.MessageLog

	conn        *models.Connection
	pairPending bool
	pairAt      time.Time

	pairDelay time.Duration
	now       func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now; tests drive pairing with it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(pairDelay time.Duration, opts ...Option) *Store {
	s := &Store{pairDelay: pairDelay, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Companies(ctx context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (s *Store) CreateCompany(ctx context.Context, in models.CompanyInput) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.companies {
		if c.CNPJ == in.CNPJ {
			return nil, common.ErrorAlreadyExists
		}
	}

	c := &models.Company{ID: uuid.NewString(), Name: in.Name, CNPJ: in.CNPJ, IsActive: true}
	s.companies = append(s.companies, c)
	cp := *c
	return &cp, nil
}

func (s *Store) UpdateCompany(ctx context.Context, id string, in models.CompanyInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.companies {
		if c.ID == id {
			c.Name = in.Name
			c.CNPJ = in.CNPJ
			return nil
		}
	}
	return common.ErrorNotFound
}

// settle promotes a pending pairing to a connection once the delay passed.
// Callers hold the write lock.
func (s *Store) settle() {
	if s.pairPending && !s.now().Before(s.pairAt) {
		s.conn = &models.Connection{ID: uuid.NewString(), PhoneNumber: PairedPhone, UpdatedAt: s.now()}
		s.pairPending = false
	}
}

// Connection returns the paired session, or nil when nothing is paired.
func (s *Store) Connection(ctx context.Context) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settle()
	if s.conn == nil {
		return nil, nil
	}
	cp := *s.conn
	return &cp, nil
}

// GenerateQR starts a pairing that completes after the configured delay and
// returns the code to scan as a data URL.
func (s *Store) GenerateQR(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pairPending = true
	s.pairAt = s.now().Add(s.pairDelay)
	return "data:image/png;base64," + placeholderPNG, nil
}

// Logout drops the paired session and any pairing still pending.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = nil
	s.pairPending = false
	return nil
}

// AppendLog records a delivery attempt, newest first.
func (s *Store) AppendLog(ctx context.Context, l models.MessageLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	s.logs = append([]*models.MessageLog{&l}, s.logs...)
}

// MessageLog returns one page of the log. Pages start at 1; a page past the
// end is empty rather than an error.
func (s *Store) MessageLog(ctx context.Context, page, limit int) ([]models.MessageLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := (page - 1) * limit
	out := []models.MessageLog{}
	if start >= len(s.logs) {
		return out, nil
	}
	end := min(start+limit, len(s.logs))
	for _, l := range s.logs[start:end] {
		out = append(out, *l)
	}
	return out, nil
}

// ResendFailed marks every unsent message as delivered. It needs a paired
// session and reports how many messages went out.
func (s *Store) ResendFailed(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settle()
	if s.conn == nil {
		return 0, common.ErrNotConnected
	}

	n := 0
	for _, l := range s.logs {
		if !l.IsSent {
			l.IsSent = true
			n++
		}
	}
	return n, nil
}
