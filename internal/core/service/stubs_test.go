package service

import (
	"context"
	"sync"
	"time"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// stubDirectory is an in-memory DirectoryRepository.
type stubDirectory struct {
	mu        sync.Mutex
	accounts  map[string]*domain.Account
	passcodes map[string]*domain.PasscodeEntry

	// reserveCollisions makes the next N ReservePasscode calls fail with
	// ErrPasscodeTaken regardless of the code.
	reserveCollisions int

	// onGetPresence runs once, after the next GetPresence read but before
	// it is returned. Lets tests interleave a flip with a read.
	onGetPresence func()
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		accounts:  make(map[string]*domain.Account),
		passcodes: make(map[string]*domain.PasscodeEntry),
	}
}

func (d *stubDirectory) CreateAccount(_ context.Context, a *domain.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.accounts {
		if existing.Email == a.Email {
			return domain.ErrEmailInUse
		}
	}
	clone := *a
	d.accounts[a.ID] = &clone
	return nil
}

func (d *stubDirectory) FindAccountByEmail(_ context.Context, email string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (d *stubDirectory) FindAccountByID(_ context.Context, id string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (d *stubDirectory) UpdateDisplayName(_ context.Context, id, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Name = name
	return nil
}

func (d *stubDirectory) ReservePasscode(_ context.Context, e *domain.PasscodeEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reserveCollisions > 0 {
		d.reserveCollisions--
		return domain.ErrPasscodeTaken
	}
	if _, exists := d.passcodes[e.Code]; exists {
		return domain.ErrPasscodeTaken
	}
	clone := *e
	d.passcodes[e.Code] = &clone
	return nil
}

func (d *stubDirectory) ReleasePasscode(_ context.Context, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.passcodes, code)
	return nil
}

func (d *stubDirectory) FindPasscode(_ context.Context, code string) (*domain.PasscodeEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.passcodes[code]
	if !ok {
		return nil, domain.ErrUnknownPasscode
	}
	clone := *e
	return &clone, nil
}

func (d *stubDirectory) UpdatePresence(_ context.Context, id string, online bool, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.IsOnline = online
	a.LastSeen = at
	return nil
}

func (d *stubDirectory) GetPresence(_ context.Context, id string) (*domain.Presence, error) {
	d.mu.Lock()
	a, ok := d.accounts[id]
	if !ok {
		d.mu.Unlock()
		return nil, domain.ErrAccountNotFound
	}
	p := &domain.Presence{UserID: id, IsOnline: a.IsOnline, LastSeen: a.LastSeen}
	d.mu.Unlock()

	if hook := d.onGetPresence; hook != nil {
		d.onGetPresence = nil
		hook()
	}
	return p, nil
}

// stubSessionStore is an in-memory SessionStore.
type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.UserID] = &clone
	return nil
}

func (s *stubSessionStore) Load(_ context.Context, userID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// stubMessageRepo is an in-memory MessageRepository.
type stubMessageRepo struct {
	mu       sync.Mutex
	messages map[string][]domain.Message

	// onList runs once, after the next ListByRoom snapshot is taken but
	// before it is returned. Lets tests interleave a write with a read.
	onList func()
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{messages: make(map[string][]domain.Message)}
}

func (r *stubMessageRepo) Append(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.RoomID] = append(r.messages[m.RoomID], *m)
	return nil
}

func (r *stubMessageRepo) ListByRoom(_ context.Context, roomID string) ([]domain.Message, error) {
	r.mu.Lock()
	out := make([]domain.Message, len(r.messages[roomID]))
	copy(out, r.messages[roomID])
	r.mu.Unlock()

	if hook := r.onList; hook != nil {
		r.onList = nil
		hook()
	}
	return out, nil
}

// memFeed is a synchronous in-process ChangeFeed and ChangeNotifier:
// Publish signals local subscribers directly and records the topic.
type memFeed struct {
	mu        sync.Mutex
	subs      map[string]map[int]chan struct{}
	next      int
	published []string
}

func newMemFeed() *memFeed {
	return &memFeed{subs: make(map[string]map[int]chan struct{})}
}

func (f *memFeed) Publish(_ context.Context, topic string) error {
	f.mu.Lock()
	f.published = append(f.published, topic)
	f.mu.Unlock()
	f.Notify(topic)
	return nil
}

func (f *memFeed) publishedTopics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}

func (f *memFeed) Notify(topic string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (f *memFeed) Subscribe(topic string) (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan struct{}, 1)
	if f.subs[topic] == nil {
		f.subs[topic] = make(map[int]chan struct{})
	}
	f.subs[topic][id] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[topic], id)
	}
}
