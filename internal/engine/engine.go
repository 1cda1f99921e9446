package engine

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/bytebaker/stego/internal/cache"
	"github.com/bytebaker/stego/internal/carrier"
	"github.com/bytebaker/stego/internal/ignore"
	"github.com/bytebaker/stego/internal/types"
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool
	NoCache         bool
	// Carriers restricts the scan to a comma-separated list of carrier names.
	Carriers string
	// Partial also reports stray symbols and frames cut short.
	Partial  bool
	Progress func()
}

type pendingScan struct {
	path   string
	data   []byte
	digest string
}

func determineBatchSize(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// inspectFile turns per-carrier probes into findings for one file.
func inspectFile(job pendingScan, allowed map[carrier.ID]bool) []types.Finding {
	var out []types.Finding
	for _, p := range carrier.Inspect(string(job.data)) {
		if !p.Found() || (len(allowed) > 0 && !allowed[p.Carrier]) {
			continue
		}
		out = append(out, types.Finding{
			Path:     job.path,
			Carrier:  p.Carrier.String(),
			Bits:     p.Bits,
			Declared: p.Declared,
			Complete: p.Complete,
			Severity: severityOf(p),
			Digest:   job.digest,
			Size:     int64(len(job.data)),
		})
	}
	return out
}

func severityOf(p carrier.Probe) types.Severity {
	switch {
	case p.Complete:
		return types.SevHigh
	case p.Declared > 0:
		return types.SevMed
	default:
		return types.SevLow
	}
}

// processChunk inspects a batch of files on up to cfg.Threads goroutines and
// records every file's findings, empty or not, in updated for the cache.
func processChunk(cfg Config, chunk []pendingScan, allowed map[carrier.ID]bool, emit func([]types.Finding), updated map[string]cache.Entry, res *Result) {
	if len(chunk) == 0 {
		return
	}
	results := make([][]types.Finding, len(chunk))
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	sem := make(chan struct{}, threads)
	var wg sync.WaitGroup
	for i, job := range chunk {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job pendingScan) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = inspectFile(job, allowed)
		}(i, job)
	}
	wg.Wait()

	for i, job := range chunk {
		emit(results[i])
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		updated[job.path] = cache.Entry{Digest: job.digest, Findings: results[i]}
	}
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
func ScanWithStats(cfg Config) (Result, error) {
	return ScanContext(context.Background(), cfg)
}

// ScanContext is ScanWithStats with cancellation. Findings are sorted by
// path and then by carrier.
func ScanContext(ctx context.Context, cfg Config) (Result, error) {
	var result Result

	allowed, err := parseCarriers(cfg.Carriers)
	if err != nil {
		return result, err
	}

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))

	var out []types.Finding
	started := time.Now()
	emit := func(fs []types.Finding) {
		out = append(out, fs...)
	}

	batchSize := determineBatchSize(cfg.Threads)
	queue := make([]pendingScan, 0, batchSize)
	err = Walk(ctx, cfg, ign, func(p string, data []byte) {
		h := fastHash(data)
		if fs, ok := db.Lookup(p, h); ok && !cfg.NoCache && len(allowed) == 0 {
			emit(fs)
			updated[p] = cache.Entry{Digest: h, Findings: fs}
			result.FilesScanned++
			result.CacheHits++
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return
		}
		queue = append(queue, pendingScan{path: p, data: data, digest: h})
		if len(queue) >= batchSize {
			processChunk(cfg, queue, allowed, emit, updated, &result)
			queue = queue[:0]
		}
	})
	if err != nil {
		return result, err
	}
	processChunk(cfg, queue, allowed, emit, updated, &result)

	result.Findings = filterPartial(out, cfg.Partial)
	sortFindings(result.Findings)
	result.Duration = time.Since(started)
	if !cfg.NoCache && len(allowed) == 0 && len(updated) > 0 {
		_ = cache.Save(cfg.Root, cache.DB{Entries: updated})
	}
	return result, nil
}

func parseCarriers(s string) (map[carrier.ID]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	allowed := map[carrier.ID]bool{}
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		id, err := carrier.Parse(name)
		if err != nil {
			return nil, err
		}
		allowed[id] = true
	}
	return allowed, nil
}

func sortFindings(fs []types.Finding) {
	order := map[string]int{}
	for i, id := range carrier.All() {
		order[id.String()] = i
	}
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		return order[fs[i].Carrier] < order[fs[j].Carrier]
	})
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
