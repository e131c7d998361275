package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/server"
	"github.com/mansoorceksport/liftlog/internal/store"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB starts a MongoDB container for the remote store. The container
// is removed when the test ends.
func SetupTestDB(t *testing.T) *mongo.Database {
	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:latest")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint).SetTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	t.Cleanup(func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Errorf("failed to disconnect mongo: %s", err)
		}
		if err := mongodbContainer.Terminate(ctx); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	})
	return mongoClient.Database("liftlog_test")
}

// NewTestConfig is the config the API runs with in these tests: Redis backed
// cache, default import pacing
func NewTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.MaxBodySizeMB = 2
	cfg.Redis.CacheBackend = config.CacheBackendRedis
	cfg.Redis.MemoryCacheSizeMB = 8
	cfg.Import.SessionsPerWeek = 3.5
	cfg.Import.BreakWeeks = 2
	cfg.Import.IdempotencyTTL = time.Minute
	return cfg
}

// NewRemoteStore is a store over the Mongo remotes with its own local cache,
// the way a second device of the same user sees the data
func NewRemoteStore(db *mongo.Database, cache domain.LocalCache) *store.Store {
	return store.New(cache, domain.ContextUser{}, server.NewRemotes(db), store.Options{})
}

// TestEnv is the API wired to a Mongo container, miniredis and fake Firebase
type TestEnv struct {
	DB    *mongo.Database
	Redis *miniredis.Miniredis
	Auth  *MockAuthClient
	App   *fiber.App
}

func NewTestEnv(t *testing.T) *TestEnv {
	db := SetupTestDB(t)
	mr := miniredis.RunT(t)
	mockAuth := NewMockAuthClient()

	app := server.NewApp(server.AppDependencies{
		Config:      NewTestConfig(),
		MongoDB:     db,
		RedisClient: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		AuthClient:  mockAuth,
	})
	// runs the shutdown hooks, pending remote mirrors included
	t.Cleanup(func() { _ = app.Shutdown() })

	return &TestEnv{DB: db, Redis: mr, Auth: mockAuth, App: app}
}

// Request sends body as JSON on behalf of token and device, either may be
// empty, and decodes the response into out when given
func (e *TestEnv) Request(t *testing.T, method, path, token, device string, body interface{}, out interface{}) int {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(jsonBytes)
	}
	req, err := http.NewRequest(method, path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if device != "" {
		req.Header.Set(middleware.DeviceIDHeader, device)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// RemoteCount counts the user's documents in a remote collection
func (e *TestEnv) RemoteCount(t *testing.T, collection, userID string) int64 {
	t.Helper()
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	n, err := e.DB.Collection(collection).CountDocuments(context.Background(), filter)
	require.NoError(t, err)
	return n
}

// MockAuthClient implements middleware.FirebaseAuthClient for testing
type MockAuthClient struct {
	// ValidTokens maps the bearer token to what VerifyIDToken returns for it
	ValidTokens map[string]*auth.Token
}

func NewMockAuthClient() *MockAuthClient {
	return &MockAuthClient{
		ValidTokens: make(map[string]*auth.Token),
	}
}

func (m *MockAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if token, ok := m.ValidTokens[idToken]; ok {
		return token, nil
	}
	return nil, fmt.Errorf("invalid mock token")
}

// AddLifter registers a signed in user reachable through token
func (m *MockAuthClient) AddLifter(token string, uid string) {
	m.ValidTokens[token] = &auth.Token{
		UID:    uid,
		Claims: map[string]interface{}{"email": uid + "@liftlog.test"},
	}
}
