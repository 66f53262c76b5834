// Package splat bootstraps the third-party point-cloud splat viewer: it
// fetches the viewer script, points it at a local asset and hands the
// patched script to an Injector. It runs once; there is no retry.
package splat

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultScriptURL is where the viewer script is published.
const DefaultScriptURL = "https://antimatter15.com/splat/main.js"

var currentURLPattern = regexp.MustCompile(`let currentUrl = '[^']*';`)

// Config describes one bootstrap.
type Config struct {
	ScriptURL string // remote viewer script
	AssetURL  string // local point-cloud the viewer should open
	OutDir    string // where DirInjector writes the loader page
	Addr      string // optional address to serve OutDir on
}

// Injector loads a patched viewer script.
type Injector interface {
	Inject(ctx context.Context, script []byte) error
}

// Fetch downloads the script at url as text.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	return body, nil
}

// Patch replaces the first default asset assignment in src with assetURL.
// Source without an assignment is returned unchanged.
func Patch(src []byte, assetURL string) []byte {
	loc := currentURLPattern.FindIndex(src)
	if loc == nil {
		return src
	}
	repl := "let currentUrl = '" + strings.ReplaceAll(assetURL, "'", `\'`) + "';"
	out := make([]byte, 0, len(src)-(loc[1]-loc[0])+len(repl))
	out = append(out, src[:loc[0]]...)
	out = append(out, repl...)
	out = append(out, src[loc[1]:]...)
	return out
}

// Bootstrap fetches, patches and injects the viewer script once.
func Bootstrap(ctx context.Context, cfg Config, client *http.Client, inj Injector) error {
	src, err := Fetch(ctx, client, cfg.ScriptURL)
	if err != nil {
		return err
	}
	return inj.Inject(ctx, Patch(src, cfg.AssetURL))
}

const loaderPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>splat</title></head>
<body><script src="main.js"></script></body>
</html>
`

// DirInjector writes the patched script and a page that loads it. Assets
// are local files, relative to AssetRoot, copied under Dir at the same
// relative path so the page can fetch them from the directory it is
// served from. Remote URLs in Assets are left alone.
type DirInjector struct {
	Dir       string
	AssetRoot string
	Assets    []string
}

// Inject implements Injector.
func (d DirInjector) Inject(_ context.Context, script []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", d.Dir)
	}
	if err := os.WriteFile(filepath.Join(d.Dir, "main.js"), script, 0o644); err != nil {
		return errors.Wrap(err, "write main.js")
	}
	if err := os.WriteFile(filepath.Join(d.Dir, "index.html"), []byte(loaderPage), 0o644); err != nil {
		return errors.Wrap(err, "write index.html")
	}
	for _, asset := range d.Assets {
		if err := d.copyAsset(asset); err != nil {
			return err
		}
	}
	return nil
}

func (d DirInjector) copyAsset(asset string) error {
	if strings.Contains(asset, "://") {
		return nil
	}
	rel := filepath.Clean(filepath.FromSlash(asset))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.Errorf("asset %s is outside the site root", asset)
	}

	src, err := os.Open(filepath.Join(d.AssetRoot, rel))
	if err != nil {
		return errors.Wrapf(err, "open asset %s", asset)
	}
	defer src.Close()

	dst := filepath.Join(d.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(dst))
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "copy asset %s", asset)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}

// Handler serves the loader directory.
func Handler(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}

// Serve serves dir on addr until ctx is cancelled.
func Serve(ctx context.Context, addr, dir string, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(dir),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if logger != nil {
		logger.Printf("serving splat viewer on http://%s/", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "serve %s", addr)
	}
	return nil
}
