package imdb

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Coroz2/imdb-narrative/internal/imdb/cache"
)

// LoadCSV reads and normalizes the dataset from a CSV file. The first
// record is the header; columns are matched by name. A file that cannot
// be opened or parsed as a whole is a load failure and returns an error;
// individual bad rows are dropped and counted in rejected.
func LoadCSV(path string) ([]Movie, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row validation happens in Normalize

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("dataset %s is empty", path)
	}

	return Normalize(records[0], records[1:])
}

// cachePayload is the serialized form of a normalized dataset stored in
// the cache, including the rejection count so diagnostics survive a
// cache hit.
type cachePayload struct {
	Movies   []Movie `json:"movies"`
	Rejected int     `json:"rejected"`
}

// Fingerprint derives the cache key for a dataset file from its path,
// size and modification time. Any change to the file produces a new key,
// which makes stale entries unreachable.
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat dataset: %w", err)
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()), nil
}

// LoadWithCache loads the dataset through a cache of normalized records.
// On a hit the CSV is not re-parsed. Cache errors are never fatal: any
// failure falls back to a direct LoadCSV.
func LoadWithCache(path string, c cache.Cache, ttl time.Duration) ([]Movie, int, error) {
	key, err := Fingerprint(path)
	if err != nil {
		return nil, 0, err
	}

	if data, ok := c.Get(key); ok {
		var payload cachePayload
		if err := json.Unmarshal(data, &payload); err == nil {
			slog.Debug("dataset cache hit", "key", key, "movies", len(payload.Movies))
			return payload.Movies, payload.Rejected, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}

	movies, rejected, err := LoadCSV(path)
	if err != nil {
		return nil, 0, err
	}

	data, err := json.Marshal(cachePayload{Movies: movies, Rejected: rejected})
	if err == nil {
		if err := c.Set(key, data, ttl); err != nil {
			slog.Warn("failed to cache dataset", "error", err)
		}
	}

	return movies, rejected, nil
}
