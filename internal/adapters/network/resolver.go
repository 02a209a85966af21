package network

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/renameio/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	internalconfig "github.com/GainsNetwork/GNS-ethereum/internal/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
	"github.com/GainsNetwork/GNS-ethereum/internal/domain/config"
	"github.com/GainsNetwork/GNS-ethereum/internal/usecase"
)

const (
	// DefaultTTL is how long a probed chain id is trusted.
	DefaultTTL = 10 * time.Minute

	probeTimeout  = 10 * time.Second
	maxConcurrent = 4
)

// cacheEntry is one record in the on-disk cache.
type cacheEntry struct {
	ChainID   uint64    `json:"chainId"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Resolver probes endpoints for their chain id. Results are kept in memory
// and in .gns/cache/chainIds.json, keyed by a hash of the endpoint URL so
// API keys embedded in URLs never reach the disk.
type Resolver struct {
	mem      *gocache.Cache
	diskPath string
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time

	loadOnce sync.Once
	mu       sync.Mutex
	disk     map[string]cacheEntry
}

// NewResolver creates a resolver caching under the project data dir.
func NewResolver(cfg *config.RuntimeConfig, log *slog.Logger) *Resolver {
	return newResolver(filepath.Join(cfg.DataDir, "cache", "chainIds.json"), DefaultTTL, log)
}

func newResolver(diskPath string, ttl time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		// no janitor: expired entries are dropped on access
		mem:      gocache.New(ttl, 0),
		diskPath: diskPath,
		ttl:      ttl,
		log:      log.With("component", "chain-id-resolver"),
		now:      time.Now,
		disk:     make(map[string]cacheEntry),
	}
}

// Endpoint returns the RPC URL a network connects to.
func Endpoint(name string, n config.NetworkConfig) (string, error) {
	if n.Provider == nil {
		if n.Host == "" {
			return "", fmt.Errorf("network %s has neither provider nor host", name)
		}
		return n.HostURL(), nil
	}
	if missing := internalconfig.MissingEnv(internalconfig.RequiredEnv(name, n)); len(missing) > 0 {
		return "", &domain.MissingEnvError{Network: name, Vars: missing}
	}
	return strings.TrimSpace(os.Getenv(n.Provider.EndpointEnv)), nil
}

// Resolve probes every network concurrently. Failures are reported per network.
func (r *Resolver) Resolve(ctx context.Context, networks map[string]config.NetworkConfig) map[string]usecase.ChainProbe {
	r.loadOnce.Do(r.loadDisk)

	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu      sync.Mutex
		results = make(map[string]usecase.ChainProbe, len(networks))
		g       errgroup.Group
		dirty   bool
	)
	g.SetLimit(maxConcurrent)

	for _, name := range names {
		endpoint, err := Endpoint(name, networks[name])
		if err != nil {
			results[name] = usecase.ChainProbe{Err: err}
			continue
		}

		key := cacheKey(endpoint)
		if id, ok := r.lookup(key); ok {
			results[name] = usecase.ChainProbe{ChainID: id, Cached: true}
			continue
		}

		g.Go(func() error {
			id, err := probe(ctx, endpoint)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.log.Debug("probe failed", "network", name, "error", err)
				results[name] = usecase.ChainProbe{Err: err}
				return nil
			}
			r.store(key, id)
			dirty = true
			results[name] = usecase.ChainProbe{ChainID: id}
			return nil
		})
	}
	_ = g.Wait()

	if dirty {
		if err := r.saveDisk(); err != nil {
			r.log.Warn("failed to write chain id cache", "path", r.diskPath, "error", err)
		}
	}
	return results
}

func (r *Resolver) lookup(key string) (uint64, bool) {
	if v, ok := r.mem.Get(key); ok {
		return v.(uint64), true
	}

	r.mu.Lock()
	entry, ok := r.disk[key]
	r.mu.Unlock()
	if !ok {
		return 0, false
	}
	remaining := r.ttl - r.now().Sub(entry.CheckedAt)
	if remaining <= 0 {
		return 0, false
	}
	r.mem.Set(key, entry.ChainID, remaining)
	return entry.ChainID, true
}

func (r *Resolver) store(key string, id uint64) {
	r.mem.Set(key, id, gocache.DefaultExpiration)
	r.mu.Lock()
	r.disk[key] = cacheEntry{ChainID: id, CheckedAt: r.now()}
	r.mu.Unlock()
}

func (r *Resolver) loadDisk() {
	data, err := os.ReadFile(r.diskPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Debug("failed to read chain id cache", "error", err)
		}
		return
	}
	entries := make(map[string]cacheEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		r.log.Debug("ignoring corrupt chain id cache", "error", err)
		return
	}
	r.mu.Lock()
	r.disk = entries
	r.mu.Unlock()
}

func (r *Resolver) saveDisk() error {
	r.mu.Lock()
	live := make(map[string]cacheEntry, len(r.disk))
	for k, e := range r.disk {
		if r.now().Sub(e.CheckedAt) < r.ttl {
			live[k] = e
		}
	}
	r.mu.Unlock()

	data, err := json.MarshalIndent(live, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.diskPath), 0755); err != nil {
		return err
	}
	return renameio.WriteFile(r.diskPath, data, 0644)
}

func probe(ctx context.Context, endpoint string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id.Uint64(), nil
}

func cacheKey(endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))
	return hex.EncodeToString(sum[:8])
}

var _ usecase.ChainIDResolver = (*Resolver)(nil)
