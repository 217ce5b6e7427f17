package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kndndrj/go-arango/arango"
	"github.com/kndndrj/go-arango/core"
)

const (
	arangoImage    = "arangodb:3.12"
	arangoPort     = "8529/tcp"
	rootPassword   = "rootpassword"
	startupTimeout = 2 * time.Minute
)

// ArangoDBContainer is a test container for ArangoDB.
type ArangoDBContainer struct {
	tc.Container
	URL      string
	Password string
	client   arangodb.Client
}

type ArangoDBContainerParams struct {
	Passwordless bool
}

// NewArangoDBContainer starts a server and connects the official driver to
// it for seeding.
func NewArangoDBContainer(ctx context.Context, params *ArangoDBContainerParams) (*ArangoDBContainer, error) {
	passwordless := params != nil && params.Passwordless

	env := map[string]string{"ARANGO_ROOT_PASSWORD": rootPassword}
	password := rootPassword
	if passwordless {
		env = map[string]string{"ARANGO_NO_AUTH": "1"}
		password = ""
	}

	req := tc.ContainerRequest{
		Image:        arangoImage,
		ExposedPorts: []string{arangoPort},
		WaitingFor:   wait.ForLog("is ready for business").WithStartupTimeout(startupTimeout),
		Env:          env,
	}
	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		ProviderType:     GetContainerProvider(),
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	url, err := ctr.PortEndpoint(ctx, arangoPort, "http")
	if err != nil {
		return nil, fmt.Errorf("ctr.PortEndpoint: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints([]string{url})
	conn := connection.NewHttpConnection(connection.HttpConfiguration{
		Endpoint:    endpoint,
		ContentType: connection.ApplicationJSON,
	})
	if !passwordless {
		conn = connection.NewJWTAuthWrapper("root", password)(conn)
	}

	return &ArangoDBContainer{
		Container: ctr,
		URL:       url,
		Password:  password,
		client:    arangodb.NewClient(conn),
	}, nil
}

// Params returns connection parameters for database name.
func (c *ArangoDBContainer) Params(name string) *core.ConnectionParams {
	params := &core.ConnectionParams{
		Name:     "test-arangodb",
		URL:      c.URL,
		Database: name,
	}
	if c.Password != "" {
		params.Username = "root"
		params.Password = c.Password
	}
	return params
}

// Seed creates a uniquely named database with a "users" document collection
// and a "knows" edge collection between them.
//
//	users: alice (30), bob (25), carol (41), dave (no age)
//	knows: alice -> bob, bob -> carol, carol -> alice
func (c *ArangoDBContainer) Seed(ctx context.Context) (name string, cleanup func(), err error) {
	name = fmt.Sprintf("testdb-%s", uuid.New().String())

	db, err := c.client.CreateDatabase(ctx, name, &arangodb.CreateDatabaseOptions{})
	if err != nil {
		return "", nil, fmt.Errorf("client.CreateDatabase: %w", err)
	}
	cleanup = func() {
		_ = db.Remove(context.Background())
	}

	users, err := db.CreateCollection(ctx, "users", &arangodb.CreateCollectionProperties{})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("db.CreateCollection: %w", err)
	}

	docs := []map[string]any{
		{"_key": "alice", "name": "Alice", "age": 30},
		{"_key": "bob", "name": "Bob", "age": 25},
		{"_key": "carol", "name": "Carol", "age": 41},
		{"_key": "dave", "name": "Dave"},
	}
	for _, doc := range docs {
		if _, err := users.CreateDocument(ctx, doc); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("users.CreateDocument: %w", err)
		}
	}

	knows, err := db.CreateCollection(ctx, "knows", &arangodb.CreateCollectionProperties{
		Type: arangodb.CollectionTypeEdge,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("db.CreateCollection: %w", err)
	}

	edges := []map[string]any{
		{"_key": "ab", "_from": "users/alice", "_to": "users/bob", "since": 2019},
		{"_key": "bc", "_from": "users/bob", "_to": "users/carol", "since": 2021},
		{"_key": "ca", "_from": "users/carol", "_to": "users/alice", "since": 2023},
	}
	for _, edge := range edges {
		if _, err := knows.CreateDocument(ctx, edge); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("knows.CreateDocument: %w", err)
		}
	}

	return name, cleanup, nil
}

// Open seeds a fresh database and opens it with this module's client.
func (c *ArangoDBContainer) Open(ctx context.Context) (*arango.Database, func(), error) {
	name, cleanup, err := c.Seed(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := arango.Open(c.Params(name))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("arango.Open: %w", err)
	}
	return db, cleanup, nil
}
