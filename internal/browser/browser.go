// Package browser opens URLs in the user's default browser.
package browser

import (
	"errors"
	"os/exec"
	"runtime"
)

// ErrUnsupported is returned on platforms without a known opener.
var ErrUnsupported = errors.New("no browser opener for this platform")

// Command returns the command that opens url on goos.
func Command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	}
	return nil, ErrUnsupported
}

// Open starts the platform opener for url without waiting for it.
func Open(url string) error {
	cmd, err := Command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
