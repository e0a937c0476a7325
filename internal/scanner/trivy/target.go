package trivy

import (
	"github.com/google/go-containerregistry/pkg/name"
	"golang.org/x/xerrors"
)

// ParseReference validates an image reference before it is handed to trivy.
// Plain-HTTP registries are accepted only when insecure is set.
func ParseReference(imageRef string, insecure bool) (name.Reference, error) {
	var nameOpts []name.Option
	if insecure {
		nameOpts = append(nameOpts, name.Insecure)
	}
	ref, err := name.ParseReference(imageRef, nameOpts...)
	if err != nil {
		return nil, xerrors.Errorf("parsing image reference: %w", err)
	}
	return ref, nil
}
