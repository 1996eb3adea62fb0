package controllers

import (
	"codeassist/codeassist/services/agent"
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/psql/models"
	"codeassist/codeassist/sources/storage"
	"codeassist/codeassist/utils/logging"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	os.Exit(m.Run())
}

// fakeStreamer plays back canned tokens (and optionally an error) and records
// the request it was handed.
type fakeStreamer struct {
	mu     sync.Mutex
	tokens []string
	err    error
	last   agent.Request
}

func (f *fakeStreamer) StreamResponse(ctx context.Context, req agent.Request) (<-chan string, <-chan error) {
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()

	ch := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(ch)
		defer close(errCh)
		for _, tok := range f.tokens {
			select {
			case ch <- tok:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		if f.err != nil {
			errCh <- f.err
		}
	}()
	return ch, errCh
}

func (f *fakeStreamer) lastRequest() agent.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type testEnv struct {
	db       *gorm.DB
	store    *storage.LocalStore
	streamer *fakeStreamer

	userDAO    *dao.UserDAO
	sessionDAO *dao.SessionDAO
	messageDAO *dao.MessageDAO
	fileDAO    *dao.SessionFileDAO

	auth     *AuthController
	sessions *SessionController
	files    *FileController
	chat     *ChatController
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
		&models.SessionFile{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	env := &testEnv{
		db:         db,
		store:      store,
		streamer:   &fakeStreamer{tokens: []string{"Hello", ", ", "world"}},
		userDAO:    dao.NewUserDAO(db),
		sessionDAO: dao.NewSessionDAO(db),
		messageDAO: dao.NewMessageDAO(db),
		fileDAO:    dao.NewSessionFileDAO(db),
	}
	env.auth = NewAuthController(env.userDAO)
	env.sessions = NewSessionController(env.sessionDAO, env.messageDAO, store)
	env.files = NewFileController(env.sessionDAO, env.fileDAO, store)
	env.chat = NewChatController(env.userDAO, env.sessionDAO, env.messageDAO, env.fileDAO, store, env.streamer)
	return env
}

func (env *testEnv) registerUser(t *testing.T, username string) (userID, apiKey string) {
	t.Helper()
	res, err := env.auth.Register(context.Background(), username)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return res["user_id"].(string), res["api_key"].(string)
}

func (env *testEnv) createSession(t *testing.T, userID, name string) string {
	t.Helper()
	res, err := env.sessions.Create(context.Background(), userID, name)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return res["session_id"].(string)
}
