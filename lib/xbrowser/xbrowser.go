package xbrowser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"

	"github.com/pkg/browser"

	"oss.terrastruct.com/xos"
)

// OpenFile shows the rendered file at path in $BROWSER, or in the system browser when
// $BROWSER is unset.
func OpenFile(ctx context.Context, env *xos.Env, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return OpenURL(ctx, env, FileURL(abs))
}

// FileURL is the file:// URL of the absolute path abs.
func FileURL(abs string) string {
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

func OpenURL(ctx context.Context, env *xos.Env, url string) error {
	browserEnv := env.Getenv("BROWSER")
	if browserEnv != "" {
		browserSh := fmt.Sprintf("%s '$1'", browserEnv)
		cmd := exec.CommandContext(ctx, "sh", "-c", browserSh, "--", url)
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("failed to run %v (out: %q): %w", cmd.Args, out, err)
		}
		return nil
	}
	return browser.OpenURL(url)
}
