package hashalgo

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"hash/adler32"
)

func init() {
	register("adler32", func() Algorithm {
		return newGenericHash("adler32", func() hash.Hash { return adler32.New() })
	})
	register("md5", func() Algorithm { return newGenericHash("md5", func() hash.Hash { return md5.New() }) })
	register("sha-1", func() Algorithm { return newGenericHash("sha-1", func() hash.Hash { return sha1.New() }) })
	register("sha-256", func() Algorithm { return newGenericHash("sha-256", func() hash.Hash { return sha256.New() }) })
	register("sha-512", func() Algorithm { return newGenericHash("sha-512", func() hash.Hash { return sha512.New() }) })
}
