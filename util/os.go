// Package util holds small process and filesystem helpers
package util

import (
	"context"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

// ShutdownTimeout is how long the shutdown func passed to WaitForSignal has to complete
const ShutdownTimeout = time.Second * 5

// WaitForSignal blocks until the process receives a termination signal or ctx is
// cancelled, then calls f with a context bounded by ShutdownTimeout
func WaitForSignal(ctx context.Context, f func(ctx context.Context) error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)
	select {
	case sig := <-sigChan:
		log.Infof("Received %s, shutting down", sig)
	case <-ctx.Done():
	}
	c, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := f(c); err != nil {
		log.Fatalf("Error closing servers gracefully; %s", err)
	}
}

// Exists checks if a file or directory exists at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindFile looks for a relative path in the working directory and its parents.
// path is returned unchanged when nothing is found.
func FindFile(path string) string {
	if filepath.IsAbs(path) || Exists(path) {
		return path
	}
	prefix := ""
	for i := 0; i < 3; i++ {
		prefix = filepath.Join(prefix, "..")
		p := filepath.Join(prefix, path)
		if Exists(p) {
			return p
		}
	}
	return path
}
