package session

import (
	"sync"

	"app/internal/domain/model"
)

// セッションIDを発行する約束。
type IDGenerator interface {
	NewID() string
}

// Session は1ユーザーぶんの状態。ログインで作成、ログアウトで破棄する。
// カートと注文履歴はセッションに閉じる（プロセス全体の共有状態にしない）。
type Session struct {
	ID       string
	UserName string
	Cart     *model.Cart
	History  []model.Order

	mu sync.Mutex
}

// セッション状態を触る間はロックを取る。
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store はセッションをIDで管理するメモリ上のストア。
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idGen    IDGenerator
}

func NewStore(idGen IDGenerator) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idGen:    idGen,
	}
}

// ログイン時に空のカートを持つ新しいセッションを作る。
func (st *Store) Create(userName string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		ID:       st.idGen.NewID(),
		UserName: userName,
		Cart:     model.NewCart(),
	}
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Find(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	return s, ok
}

// ログアウト時にセッション状態ごと破棄する。
func (st *Store) Destroy(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, id)
}
