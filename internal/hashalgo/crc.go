package hashalgo

import (
	"hash"
	"hash/crc32"
	"hash/crc64"
)

func init() {
	register("crc32", func() Algorithm { return newCRC32() })
	register("crc64", func() Algorithm { return newCRC64() })
}

type crc32Algo struct {
	h hash.Hash32
}

func newCRC32() *crc32Algo {
	return &crc32Algo{h: crc32.New(crc32.MakeTable(crc32.IEEE))}
}

func (c *crc32Algo) Name() string               { return "crc32" }
func (c *crc32Algo) OutputSize() int            { return c.h.Size() }
func (c *crc32Algo) WriteFile(path string) error { return readFile(path, c.h) }
func (c *crc32Algo) WriteBytes(data []byte) error {
	_, err := c.h.Write(data)
	return err
}
func (c *crc32Algo) Reset() { c.h.Reset() }
func (c *crc32Algo) Sum() []byte {
	sum := c.h.Sum32()
	return []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
}
func (c *crc32Algo) NewCopy() Algorithm { return newCRC32() }

type crc64Algo struct {
	h hash.Hash64
}

func newCRC64() *crc64Algo {
	return &crc64Algo{h: crc64.New(crc64.MakeTable(crc64.ISO))}
}

func (c *crc64Algo) Name() string               { return "crc64" }
func (c *crc64Algo) OutputSize() int            { return c.h.Size() }
func (c *crc64Algo) WriteFile(path string) error { return readFile(path, c.h) }
func (c *crc64Algo) WriteBytes(data []byte) error {
	_, err := c.h.Write(data)
	return err
}
func (c *crc64Algo) Reset() { c.h.Reset() }
func (c *crc64Algo) Sum() []byte {
	sum := c.h.Sum64()
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(sum >> (8 * (7 - i)))
	}
	return out
}
func (c *crc64Algo) NewCopy() Algorithm { return newCRC64() }
