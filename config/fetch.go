package config

import (
	"context"
	"fmt"
	"time"

	getter "github.com/hashicorp/go-getter"
)

// FetchRegistry downloads a registry file from a remote source to dst.
// The source can be any go-getter URL (github.com/org/repo//path, https, s3, ...).
func FetchRegistry(src string, dst string) error {
	deadline := time.Now().Add(120 * time.Second)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	opts := getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeFile,
		Detectors: []getter.Detector{
			&getter.GitHubDetector{},
		},
	}

	if err := opts.Get(); err != nil {
		return fmt.Errorf("failed to download registry: %w", err)
	}
	return nil
}
