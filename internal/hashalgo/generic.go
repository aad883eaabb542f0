package hashalgo

import "hash"

// genericHash adapts any standard-library hash.Hash (whose Sum/Reset
// semantics already match Algorithm's) into an Algorithm. Most algorithms
// in this package need nothing beyond this adapter; the few that manage
// extra state (crc32, crc64, shake256-128) implement Algorithm directly.
type genericHash struct {
	name string
	new  func() hash.Hash
	h    hash.Hash
}

func newGenericHash(name string, new func() hash.Hash) *genericHash {
	return &genericHash{name: name, new: new, h: new()}
}

func (g *genericHash) Name() string    { return g.name }
func (g *genericHash) OutputSize() int { return g.h.Size() }

func (g *genericHash) WriteFile(path string) error { return readFile(path, g.h) }

func (g *genericHash) WriteBytes(data []byte) error {
	_, err := g.h.Write(data)
	return err
}

func (g *genericHash) Sum() []byte { return g.h.Sum(nil) }

func (g *genericHash) Reset() { g.h.Reset() }

func (g *genericHash) NewCopy() Algorithm {
	return &genericHash{name: g.name, new: g.new, h: g.new()}
}
