package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/domain/billing"
	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// Fakes em memória dos ports, compartilhados pelos testes dos casos de uso.

type memStorage struct {
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (s *memStorage) Set(key, value string) error {
	s.data[key] = value
	return nil
}

func (s *memStorage) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memStorage) Remove(key string) {
	delete(s.data, key)
}

type fakeSessionRepo struct {
	stores map[string]*quiz.Store
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{stores: make(map[string]*quiz.Store)}
}

func (r *fakeSessionRepo) SaveSession(store *quiz.Store) error {
	r.stores[store.SessionID()] = store
	return nil
}

func (r *fakeSessionRepo) FindSessionByID(id string) (*quiz.Store, error) {
	return r.stores[id], nil
}

func (r *fakeSessionRepo) DeleteSession(id string) error {
	delete(r.stores, id)
	return nil
}

type fakeLeadRepo struct {
	saved    []*lead.Lead
	saveErr  error
	bySessao map[string]*lead.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{bySessao: make(map[string]*lead.Lead)}
}

func (r *fakeLeadRepo) Save(ctx context.Context, l *lead.Lead) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, l)
	r.bySessao[l.SessionID] = l
	return nil
}

func (r *fakeLeadRepo) FindBySessionID(ctx context.Context, sessionID string) (*lead.Lead, error) {
	return r.bySessao[sessionID], nil
}

func (r *fakeLeadRepo) FindByEmail(ctx context.Context, email string) (*lead.Lead, error) {
	for _, l := range r.bySessao {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, nil
}

type fakeEventRepo struct {
	saved   []*funnel.Event
	saveErr error
}

func (r *fakeEventRepo) Save(ctx context.Context, e *funnel.Event) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, e)
	return nil
}

func (r *fakeEventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]*funnel.Event, error) {
	var out []*funnel.Event
	for _, e := range r.saved {
		if e.SessionID == sessionID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CountBySessionAndName(ctx context.Context, sessionID, name string) (int, error) {
	count := 0
	for _, e := range r.saved {
		if e.SessionID == sessionID && e.Name == name {
			count++
		}
	}
	return count, nil
}

func (r *fakeEventRepo) names() []string {
	out := make([]string, 0, len(r.saved))
	for _, e := range r.saved {
		out = append(out, e.Name)
	}
	return out
}

type fakeRateLimiter struct {
	allow bool
	keys  []string
}

func (l *fakeRateLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

type fakeIdempotency struct {
	marked map[string]bool
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{marked: make(map[string]bool)}
}

func (s *fakeIdempotency) Check(key string) bool { return !s.marked[key] }
func (s *fakeIdempotency) Mark(key string)       { s.marked[key] = true }

type fakeCheckoutProvider struct {
	created     []ports.CheckoutSessionInput
	session     *ports.CheckoutSession
	createErr   error
	retrieved   *ports.CheckoutSession
	retrieveErr error
}

func (p *fakeCheckoutProvider) CreateSession(ctx context.Context, input ports.CheckoutSessionInput) (*ports.CheckoutSession, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created = append(p.created, input)
	return p.session, nil
}

func (p *fakeCheckoutProvider) RetrieveSession(ctx context.Context, id string) (*ports.CheckoutSession, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return p.retrieved, nil
}

type fakePaymentRepo struct {
	saved []*billing.Payment
}

func (r *fakePaymentRepo) Save(ctx context.Context, p *billing.Payment) error {
	r.saved = append(r.saved, p)
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id string) (*billing.Payment, error) {
	for _, p := range r.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

type fakeWebhookRepo struct {
	events    map[string]*billing.WebhookEvent
	processed map[string]string
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{
		events:    make(map[string]*billing.WebhookEvent),
		processed: make(map[string]string),
	}
}

func (r *fakeWebhookRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	_, ok := r.events[eventID]
	return ok, nil
}

func (r *fakeWebhookRepo) Save(ctx context.Context, e *billing.WebhookEvent) error {
	r.events[e.ID] = e
	return nil
}

func (r *fakeWebhookRepo) MarkProcessed(ctx context.Context, eventID, note string) error {
	r.processed[eventID] = note
	return nil
}

type fakeUserRepo struct {
	users       map[string]*access.User // por id
	enrollments map[string]bool         // userID+program
	saveErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[string]*access.User),
		enrollments: make(map[string]bool),
	}
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*access.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*access.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Save(ctx context.Context, u *access.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *access.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SaveEnrollment(ctx context.Context, e *access.Enrollment) error {
	r.enrollments[e.UserID+":"+e.Program] = true
	return nil
}

func (r *fakeUserRepo) HasEnrollment(ctx context.Context, userID, program string) (bool, error) {
	return r.enrollments[userID+":"+program], nil
}

type fakeTokenRepo struct {
	tokens  map[string]*access.MagicToken
	saveErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*access.MagicToken)}
}

func (r *fakeTokenRepo) Save(ctx context.Context, t *access.MagicToken) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tokens[t.TokenHash] = t
	return nil
}

func (r *fakeTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*access.MagicToken, error) {
	return r.tokens[tokenHash], nil
}

func (r *fakeTokenRepo) MarkUsed(ctx context.Context, tokenHash string) error {
	t, ok := r.tokens[tokenHash]
	if !ok {
		return errors.New("token inexistente")
	}
	t.Used = true
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for hash, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, hash)
			n++
		}
	}
	return n, nil
}

type fakeEmailSender struct {
	sent    []ports.EmailMessage
	sendErr error
	reject  string
}

func (s *fakeEmailSender) Send(ctx context.Context, msg ports.EmailMessage) (*ports.EmailSendResult, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	if s.reject != "" {
		return &ports.EmailSendResult{Success: false, Error: s.reject}, nil
	}
	s.sent = append(s.sent, msg)
	return &ports.EmailSendResult{Success: true, MessageID: "msg-1"}, nil
}

type fakeTokenService struct {
	token string
}

func (s *fakeTokenService) GenerateToken(userID string) (string, int64, error) {
	return s.token + userID, time.Now().Add(time.Hour).UnixMilli(), nil
}

func (s *fakeTokenService) ValidateToken(tokenString string) (string, error) {
	return "", errors.New("não usado nos testes")
}
