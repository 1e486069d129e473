package web

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"
)

// BrowserDelay is how long OpenBrowser waits so the listener is up first.
const BrowserDelay = 1500 * time.Millisecond

// OpenBrowser opens url in the desktop browser after delay. It returns
// immediately; failures are only logged.
func OpenBrowser(url string, delay time.Duration) {
	go func() {
		time.Sleep(delay)

		cmd, err := browserCommand(runtime.GOOS, url)
		if err != nil {
			slog.Debug("browser auto-open skipped", "error", err)
			return
		}
		if err := cmd.Start(); err != nil {
			slog.Debug("browser auto-open failed", "error", err)
			return
		}
		// Reap the launcher so it does not linger as a zombie.
		go func() { _ = cmd.Wait() }()
	}()
}

func browserCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform for browser auto-open: %s", goos)
	}
}
