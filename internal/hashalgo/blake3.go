package hashalgo

import (
	"hash"

	"github.com/zeebo/blake3"
)

func init() {
	register("blake3", func() Algorithm {
		return newGenericHash("blake3", func() hash.Hash { return blake3.New() })
	})
}
