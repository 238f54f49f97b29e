package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var oracleLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "events_tracker_oracle_lookup_duration_seconds",
	Help:    "Latency of membership directory lookups",
	Buckets: prometheus.DefBuckets,
})

// DirectoryOracle resolves membership against the community's member
// directory over HTTP. The directory returns the full member list; we look
// for the address among the entry ids.
type DirectoryOracle struct {
	url    string
	client *http.Client
}

// NewDirectoryOracle builds an oracle for the given directory URL with a
// bounded per-lookup timeout.
func NewDirectoryOracle(url string, timeout time.Duration) *DirectoryOracle {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DirectoryOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type directoryEntry struct {
	ID string `json:"id"`
}

// IsMember reports whether addr appears in the directory. Any non-200
// response or decode failure is an error; callers fail closed on it.
func (o *DirectoryOracle) IsMember(ctx context.Context, addr common.Address) (bool, error) {
	start := time.Now()
	defer func() { oracleLookupDuration.Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url, nil)
	if err != nil {
		return false, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var entries []directoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return false, fmt.Errorf("decode directory response: %w", err)
	}

	for _, e := range entries {
		if common.IsHexAddress(e.ID) && common.HexToAddress(e.ID) == addr {
			return true, nil
		}
	}
	return false, nil
}
