package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

var (
	_ repository.SessionStore      = (*SessionStore)(nil)
	_ repository.PreferenceStore   = (*PreferenceStore)(nil)
	_ repository.NotificationStore = (*NotificationStore)(nil)
)

// SessionStore guarda el blob JSON de cada sesión, igual que el adaptador Redis.
type SessionStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	now   func() time.Time
}

// NewSessionStore crea un almacén de sesiones vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{blobs: make(map[string][]byte), now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, sess *entity.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[sess.ID] = b
	return nil
}

// Load decodifica el blob; uno expirado se descarta.
func (s *SessionStore) Load(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[id]
	if !ok {
		return nil, nil
	}
	var sess entity.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, domain.ErrSessionCorrupted
	}
	if sess.Expired(s.now()) {
		delete(s.blobs, id)
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error { return ctx.Err() }

// PutRaw escribe un blob sin validar (tests de blobs corruptos).
func (s *SessionStore) PutRaw(id string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = blob
}

// PreferenceStore preferencias como pares clave → string, una clave por preferencia.
type PreferenceStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

// NewPreferenceStore crea un almacén de preferencias vacío.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{data: make(map[string]map[string]string)}
}

func (p *PreferenceStore) Load(_ context.Context, userID string) (entity.Preferences, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return entity.DecodePreferences(p.data[userID]), nil
}

func (p *PreferenceStore) Save(_ context.Context, userID string, prefs entity.Preferences) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[userID] = prefs.Encode()
	return nil
}

// maxNotifications tamaño del feed por usuario.
const maxNotifications = 50

// NotificationStore feed de notificaciones por usuario.
type NotificationStore struct {
	mu   sync.Mutex
	feed map[string][]*entity.Notification
}

// NewNotificationStore crea un feed vacío.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{feed: make(map[string][]*entity.Notification)}
}

func (n *NotificationStore) Push(_ context.Context, note *entity.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	cp := *note
	list := append([]*entity.Notification{&cp}, n.feed[note.UserID]...)
	if len(list) > maxNotifications {
		list = list[:maxNotifications]
	}
	n.feed[note.UserID] = list
	return nil
}

func (n *NotificationStore) List(_ context.Context, userID string, limit int) ([]*entity.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	list := n.feed[userID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]*entity.Notification, 0, len(list))
	for _, note := range list {
		cp := *note
		out = append(out, &cp)
	}
	return out, nil
}
