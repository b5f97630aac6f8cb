package preflight

import (
	"context"
	"fmt"
	"strings"

	"cleanarr/internal/catalog"
	"cleanarr/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request lists what RunAll should verify.
type Request struct {
	AssetsDir string
	MediaDirs []string
	// WriteAssets requires write access to AssetsDir (real runs).
	WriteAssets bool
	// Catalog is pinged when non-nil.
	Catalog catalog.Source
}

// RunAll executes every check applicable to req.
func RunAll(ctx context.Context, req Request) []Result {
	var results []Result

	if req.WriteAssets {
		results = append(results, CheckDirectoryAccess("Asset directory", req.AssetsDir))
	} else {
		results = append(results, CheckDirectoryReadable("Asset directory", req.AssetsDir))
	}
	for i, dir := range req.MediaDirs {
		results = append(results, CheckDirectoryReadable(fmt.Sprintf("Media directory %d", i+1), dir))
	}
	if req.Catalog != nil {
		results = append(results, CheckCatalog(ctx, req.Catalog))
	}
	return results
}

// Failures returns an ErrValidation error naming every failed result, or nil.
func Failures(results []Result) error {
	var failed []string
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result.Name+": "+result.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrValidation, "preflight", "check", strings.Join(failed, "; "), nil)
}
