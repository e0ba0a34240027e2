package user

import (
	c "authgate/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakePasswordHasher struct {
	HashCount int
	lock      sync.Mutex
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	h.lock.Lock()
	h.HashCount++
	h.lock.Unlock()
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

// FakeRestoreTokenIssuer hands out sequential opaque tokens and keeps their
// claims in memory.
type FakeRestoreTokenIssuer struct {
	TTL         time.Duration
	Now         func() time.Time
	IssuedCount int
	Claims      map[RestoreToken]RestoreClaims
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRestoreTokenIssuer(ttl time.Duration, now func() time.Time) *FakeRestoreTokenIssuer {
	return &FakeRestoreTokenIssuer{
		TTL:    ttl,
		Now:    now,
		Claims: make(map[RestoreToken]RestoreClaims),
	}
}

func (i *FakeRestoreTokenIssuer) Issue(u User) (token RestoreToken, claims RestoreClaims, err error) {
	if i.ReturnError {
		return token, claims, fmt.Errorf("could not issue restore token for user %d", u.ID)
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	i.IssuedCount++
	token = RestoreToken(fmt.Sprintf("restore-token-%d", i.IssuedCount))
	claims = RestoreClaims{
		ID:          RestoreTokenID(fmt.Sprintf("restore-token-id-%d", i.IssuedCount)),
		UserID:      u.ID,
		Fingerprint: i.Fingerprint(u.PasswordHash),
		IssuedAt:    i.Now(),
		ExpiresAt:   i.Now().Add(i.TTL),
	}
	i.Claims[token] = claims
	return token, claims, nil
}

func (i *FakeRestoreTokenIssuer) Verify(token RestoreToken) (claims RestoreClaims, err error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	claims, ok := i.Claims[token]
	if !ok {
		return claims, ErrInvalidRestoreTokenSignature
	}
	if !i.Now().Before(claims.ExpiresAt) {
		return claims, ErrRestoreTokenExpired
	}
	return claims, nil
}

func (i *FakeRestoreTokenIssuer) Fingerprint(hash PasswordHash) string {
	return "fingerprint:" + string(hash)
}

type FakeRestoreTokenLedger struct {
	Consumed    map[RestoreTokenID]ID
	Released    []RestoreTokenID
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRestoreTokenLedger() *FakeRestoreTokenLedger {
	return &FakeRestoreTokenLedger{Consumed: make(map[RestoreTokenID]ID)}
}

func (l *FakeRestoreTokenLedger) Consume(ctx context.Context, claims RestoreClaims) (bool, error) {
	if l.ReturnError {
		return false, fmt.Errorf("could not consume restore token %s", claims.ID)
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	if _, ok := l.Consumed[claims.ID]; ok {
		return false, nil
	}
	l.Consumed[claims.ID] = claims.UserID
	return true, nil
}

func (l *FakeRestoreTokenLedger) Release(ctx context.Context, claims RestoreClaims) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	delete(l.Consumed, claims.ID)
	l.Released = append(l.Released, claims.ID)
	return nil
}

type FakeRestoreLinkDispatcher struct {
	Sent        []RestoreLink
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRestoreLinkDispatcher() *FakeRestoreLinkDispatcher {
	return &FakeRestoreLinkDispatcher{}
}

func (d *FakeRestoreLinkDispatcher) DispatchRestoreLink(ctx context.Context, link RestoreLink) error {
	if d.ReturnError {
		return fmt.Errorf("could not dispatch restore link to %s", link.Email)
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Sent = append(d.Sent, link)
	return nil
}

func (d *FakeRestoreLinkDispatcher) SendRestoreLink(ctx context.Context, link RestoreLink) error {
	return d.DispatchRestoreLink(ctx, link)
}

func (d *FakeRestoreLinkDispatcher) SentCount() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.Sent)
}

type FakeSessionTokenIssuer struct {
	Now    func() time.Time
	Claims map[SessionToken]SessionClaims
	lock   sync.Mutex
}

func NewFakeSessionTokenIssuer(now func() time.Time) *FakeSessionTokenIssuer {
	return &FakeSessionTokenIssuer{Now: now, Claims: make(map[SessionToken]SessionClaims)}
}

func (i *FakeSessionTokenIssuer) Issue(u User) (SessionToken, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	token := SessionToken(fmt.Sprintf("session-token-%d-%d", u.ID, len(i.Claims)+1))
	i.Claims[token] = SessionClaims{UserID: u.ID, IssuedAt: i.Now(), ExpiresAt: i.Now().Add(time.Hour)}
	return token, nil
}

func (i *FakeSessionTokenIssuer) Verify(token SessionToken) (claims SessionClaims, err error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	claims, ok := i.Claims[token]
	if !ok {
		return claims, ErrInvalidSessionToken
	}
	return claims, nil
}
