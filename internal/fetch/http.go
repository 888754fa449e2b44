package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goplus/pasys/internal/errs"
)

// HTTP downloads in-process instead of through a host tool.
type HTTP struct {
	Client *http.Client
}

// NewHTTP returns an HTTP fetcher with a generous timeout for large tarballs.
func NewHTTP() *HTTP {
	return &HTTP{Client: &http.Client{Timeout: 10 * time.Minute}}
}

func (h *HTTP) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.New(errs.ErrMalformedInput, "fetch", err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return errs.New(errs.ErrToolLaunch, "fetch "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.Newf(errs.ErrToolExit, "fetch "+url, "unexpected status: %d", resp.StatusCode)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return errs.FS("fetch", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return errs.New(errs.ErrToolExit, "fetch "+url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errs.FS("fetch", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return errs.FS("fetch", err)
	}
	return nil
}

func (h *HTTP) String() string { return fmt.Sprintf("http(timeout=%s)", h.Client.Timeout) }
