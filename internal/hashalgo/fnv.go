package hashalgo

import (
	"hash"
	"hash/fnv"
)

func init() {
	register("fnv-1-32", func() Algorithm { return newGenericHash("fnv-1-32", func() hash.Hash { return fnv.New32() }) })
	register("fnv-1-64", func() Algorithm { return newGenericHash("fnv-1-64", func() hash.Hash { return fnv.New64() }) })
	register("fnv-1-128", func() Algorithm { return newGenericHash("fnv-1-128", func() hash.Hash { return fnv.New128() }) })
	register("fnv-1a-32", func() Algorithm { return newGenericHash("fnv-1a-32", func() hash.Hash { return fnv.New32a() }) })
	register("fnv-1a-64", func() Algorithm { return newGenericHash("fnv-1a-64", func() hash.Hash { return fnv.New64a() }) })
	register(DefaultName, func() Algorithm { return newGenericHash(DefaultName, func() hash.Hash { return fnv.New128a() }) })
}
