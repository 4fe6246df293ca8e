package cli

import (
	"github.com/toyz/attest/internal/errors"
	"github.com/toyz/attest/internal/utils"
)

// ModuleResolver resolves import paths for scanned package
// directories, caching per-directory results
type ModuleResolver struct {
	customModule string
	cache        map[string]string
}

// NewModuleResolver creates a new module resolver. When customModule
// is empty the module name comes from the nearest go.mod.
func NewModuleResolver(customModule string) *ModuleResolver {
	return &ModuleResolver{
		customModule: customModule,
		cache:        make(map[string]string),
	}
}

// ResolveImportPath returns the import path of the package in dir
func (r *ModuleResolver) ResolveImportPath(dir string) (string, error) {
	if path, ok := r.cache[dir]; ok {
		return path, nil
	}

	var path string
	var err error
	if r.customModule != "" {
		path, err = utils.JoinModulePath(r.customModule, dir)
	} else {
		path, err = utils.ModulePathForDir(dir)
	}
	if err != nil {
		return "", errors.Wrapf(errors.ConfigurationErrorCode, err,
			"failed to determine import path for %s (consider using --module)", dir)
	}

	r.cache[dir] = path
	return path, nil
}
