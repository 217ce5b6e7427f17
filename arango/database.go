package arango

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/logging"
	"github.com/kndndrj/go-arango/transport"
)

// countConcurrency bounds parallel requests in CollectionCounts.
const countConcurrency = 10

type config struct {
	log       logging.Logger
	client    *http.Client
	transport core.Transport
}

type Option func(*config)

func WithLogger(log logging.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient is passed to the default HTTP transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t core.Transport) Option {
	return func(c *config) {
		c.transport = t
	}
}

// Database is the entry point for all resources of one database.
type Database struct {
	conn *core.Connection
	log  logging.Logger
}

// Open connects to the database described by params. No request is made.
func Open(params *core.ConnectionParams, opts ...Option) (*Database, error) {
	cfg := &config{log: logging.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	tr := cfg.transport
	if tr == nil {
		expanded := params.Expand()
		h, err := transport.FromParams(expanded, transport.WithLogger(cfg.log), transport.WithClient(cfg.client))
		if err != nil {
			return nil, fmt.Errorf("transport.FromParams: %w", err)
		}
		tr = h
	}

	conn, err := core.NewConnection(params, tr)
	if err != nil {
		return nil, fmt.Errorf("core.NewConnection: %w", err)
	}

	return &Database{conn: conn, log: cfg.log}, nil
}

// NewDatabase wraps an existing connection.
func NewDatabase(conn *core.Connection, log logging.Logger) *Database {
	if log == nil {
		log = logging.Nop()
	}
	return &Database{conn: conn, log: log}
}

func (db *Database) Name() string {
	return db.conn.GetDatabase()
}

func (db *Database) Connection() *core.Connection {
	return db.conn
}

// Use returns a handle on another database of the same server.
func (db *Database) Use(name string) *Database {
	return &Database{conn: db.conn.WithDatabase(name), log: db.log}
}

// Version returns the server version string.
func (db *Database) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	if err := db.conn.SendWithoutDatabase(ctx, http.MethodGet, "version", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Databases lists the databases the current user can access.
func (db *Database) Databases(ctx context.Context) ([]string, error) {
	var resp struct {
		Result []string `json:"result"`
	}
	if err := db.conn.SendWithoutDatabase(ctx, http.MethodGet, "database/user", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (db *Database) CreateDatabase(ctx context.Context, name string) (*Database, error) {
	body := map[string]any{"name": name}
	if err := db.conn.SendWithoutDatabase(ctx, http.MethodPost, "database", body, nil); err != nil {
		return nil, err
	}
	return db.Use(name), nil
}

func (db *Database) DropDatabase(ctx context.Context, name string) error {
	return db.conn.SendWithoutDatabase(ctx, http.MethodDelete, "database/"+url.PathEscape(name), nil, nil)
}

// Collections returns all non-system collections.
func (db *Database) Collections(ctx context.Context) ([]*Collection, error) {
	return db.collectionsWhere(ctx, func(raw *rawCollection) bool {
		return !strings.HasPrefix(raw.Name, "_")
	})
}

// SystemCollections returns the collections whose name starts with "_".
func (db *Database) SystemCollections(ctx context.Context) ([]*Collection, error) {
	return db.collectionsWhere(ctx, func(raw *rawCollection) bool {
		return strings.HasPrefix(raw.Name, "_")
	})
}

func (db *Database) collectionsWhere(ctx context.Context, keep func(*rawCollection) bool) ([]*Collection, error) {
	var resp struct {
		Result []*rawCollection `json:"result"`
		// older servers
		Collections []*rawCollection `json:"collections"`
	}
	if err := db.conn.SendRequest(ctx, http.MethodGet, "collection", nil, &resp); err != nil {
		return nil, err
	}

	raws := resp.Result
	if len(raws) == 0 {
		raws = resp.Collections
	}

	var out []*Collection
	for _, raw := range raws {
		if keep(raw) {
			out = append(out, newCollection(db, raw))
		}
	}
	return out, nil
}

// CreateCollectionOptions are the optional settings of a new collection.
type CreateCollectionOptions struct {
	Volatile    bool
	ContentType ContentType
	KeyOptions  *KeyOptions
	WaitForSync bool
}

func (db *Database) CreateCollection(ctx context.Context, name string, opts *CreateCollectionOptions) (*Collection, error) {
	body := map[string]any{"name": name}
	if opts != nil {
		if opts.Volatile {
			body["isVolatile"] = true
		}
		if opts.ContentType != "" {
			body["type"] = opts.ContentType.wireType()
		}
		if opts.KeyOptions != nil {
			body["keyOptions"] = opts.KeyOptions
		}
		if opts.WaitForSync {
			body["waitForSync"] = true
		}
	}

	var raw rawCollection
	if err := db.conn.SendRequest(ctx, http.MethodPost, "collection", body, &raw); err != nil {
		return nil, err
	}
	return newCollection(db, &raw), nil
}

// Collection returns the named collection, creating it when it does not
// exist.
func (db *Database) Collection(ctx context.Context, name string) (*Collection, error) {
	coll, err := db.GetCollection(ctx, name)
	if err == nil {
		return coll, nil
	}
	if !errors.Is(err, core.ErrCollectionNotFound) {
		return nil, err
	}

	db.log.Debugf("collection %q not found, creating it", name)
	return db.CreateCollection(ctx, name, nil)
}

// GetCollection returns the named collection without creating it.
func (db *Database) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var raw rawCollection
	if err := db.conn.SendRequest(ctx, http.MethodGet, collectionPath(name), nil, &raw); err != nil {
		return nil, err
	}
	return newCollection(db, &raw), nil
}

// CollectionCounts fetches document counts of the named collections in
// parallel.
func (db *Database) CollectionCounts(ctx context.Context, names []string) (map[string]int64, error) {
	var mu sync.Mutex
	counts := make(map[string]int64, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)

	for _, name := range names {
		g.Go(func() error {
			coll := &Collection{db: db, name: name}
			count, err := coll.Count(ctx)
			if err != nil {
				return fmt.Errorf("count %q: %w", name, err)
			}

			mu.Lock()
			counts[name] = count
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Query returns a query builder that is not bound to a collection.
func (db *Database) Query() *Query {
	return &Query{db: db}
}

// Transaction prepares a server-side transaction. Nothing is sent until
// Execute.
func (db *Database) Transaction(action string, collections TransactionCollections) *Transaction {
	return newTransaction(db, action, collections)
}
