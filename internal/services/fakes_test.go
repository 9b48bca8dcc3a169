package services

import (
	"sort"
	"sync"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/WinterOat/vault_service/internal/repository"
)

// in-memory ProfileRepository
type fakeProfileRepo struct {
	mu       sync.Mutex
	nextID   uint
	profiles map[uint]domain.BankProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		nextID:   1,
		profiles: make(map[uint]domain.BankProfile),
	}
}

func (f *fakeProfileRepo) ListByOwner(ownerID uint) ([]domain.BankProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BankProfile
	for _, p := range f.profiles {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProfileRepo) FindByID(id uint) (*domain.BankProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfileRepo) Create(profile *domain.BankProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile.ID = f.nextID
	f.nextID++
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *fakeProfileRepo) Update(profile *domain.BankProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; !ok {
		return repository.ErrProfileNotFound
	}
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *fakeProfileRepo) Delete(ownerID uint, profileID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok || p.UserID != ownerID {
		return repository.ErrProfileNotFound
	}
	delete(f.profiles, profileID)
	return nil
}

func (f *fakeProfileRepo) CountByOwner(ownerID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.profiles {
		if p.UserID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProfileRepo) DeleteByOwner(ownerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.profiles {
		if p.UserID == ownerID {
			delete(f.profiles, id)
		}
	}
	return nil
}

func (f *fakeProfileRepo) seed(p domain.BankProfile) domain.BankProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.profiles[p.ID] = p
	return p
}

// in-memory SecretRepository
type fakeSecretRepo struct {
	mu     sync.Mutex
	digest string
}

func (f *fakeSecretRepo) GetDigest() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.digest == "" {
		return "", repository.ErrNoMasterSecret
	}
	return f.digest, nil
}

func (f *fakeSecretRepo) SetDigest(digest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.digest = digest
	return nil
}

// in-memory AuditRepository
type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.GateAudit
}

func (f *fakeAuditRepo) Append(entry *domain.GateAudit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListByUser(userID uint, limit int) ([]domain.GateAudit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.GateAudit
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// recording ProducerHandler
type fakeProducer struct {
	mu       sync.Mutex
	messages []producedMessage
}

type producedMessage struct {
	Key   string
	Value string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, producedMessage{Key: string(key), Value: string(value)})
	return nil
}

func (f *fakeProducer) byPrefix(prefix string) []producedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []producedMessage
	for _, m := range f.messages {
		if len(m.Key) >= len(prefix) && m.Key[:len(prefix)] == prefix {
			out = append(out, m)
		}
	}
	return out
}

// in-memory UserRepository
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]domain.User)}
}

func (f *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}
