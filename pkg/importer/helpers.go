package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hazyhaar/yomikata/pkg/termdb"
)

const downloadAttempts = 3

// retryInterval is the first wait between download attempts.
var retryInterval = time.Second

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// downloadFile fetches url into dest. 5xx answers and network errors are
// retried with exponential backoff; 4xx answers fail at once.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			if resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		f, err := os.Create(dest)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create file: %w", err))
		}
		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(eb, downloadAttempts-1), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}

// localCopy returns a local path for source, downloading it into dir when
// it is a URL.
func localCopy(ctx context.Context, source, dir string) (string, error) {
	if !isRemote(source) {
		if _, err := os.Stat(source); err != nil {
			return "", fmt.Errorf("source: %w", err)
		}
		return source, nil
	}
	name := path.Base(source)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "/" || name == "." {
		name = "download"
	}
	dest := filepath.Join(dir, name)
	if err := downloadFile(ctx, source, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// batchSize bounds the terms written per transaction.
const batchSize = 5000

// replaceDictionary drops dict from store and writes terms in batches.
func replaceDictionary(ctx context.Context, store *termdb.Store, dict string, terms []termdb.Term) (int, error) {
	if _, err := store.DeleteDictionary(ctx, dict); err != nil {
		return 0, err
	}
	total := 0
	for start := 0; start < len(terms); start += batchSize {
		n, err := store.Insert(ctx, terms[start:min(start+batchSize, len(terms))])
		total += n
		if err != nil {
			return total, fmt.Errorf("dictionary %s: %w", dict, err)
		}
	}
	return total, nil
}
