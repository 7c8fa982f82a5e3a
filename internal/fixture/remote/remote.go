// Package remote is the faraway half of the fixture corpus: seams another
// package reaches through a qualified name.
package remote

import (
	"errors"

	"stunt.dev/pkg/stunt/namespace"
)

var (
	// Fetch pulls a document from the collector.
	Fetch = func(url string) ([]byte, error) {
		if url == "" {
			return nil, errors.New("remote: empty url")
		}

		return []byte("remote:" + url), nil
	}

	// Timeout bounds a fetch, in seconds.
	Timeout = 30
)

var _ = namespace.Register(
	namespace.Var("Fetch", &Fetch),
	namespace.Var("Timeout", &Timeout),
)
