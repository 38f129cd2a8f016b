// Package capability implements the transferable right to read, and
// optionally write, one storage location.
package capability

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/util/crypto"
)

const (
	MapKeySize = 32

	// PublicSize is the length of the read-only encoding
	// ownerPublic ‖ writerPublic ‖ mapKey ‖ dataKey.
	PublicSize = identity.PublicKeysSize*2 + MapKeySize + crypto.SymmetricKeySize
	// WritableSize additionally carries the writer's secret keys.
	WritableSize = PublicSize + identity.SecretKeysSize
)

var (
	ErrMalformed      = errors.New("malformed capability")
	ErrNoWriterSecret = errors.New("capability has no writer secret")
)

// Capability (a writable file pointer) addresses the location
// (owner, writer, mapKey) and carries the key that decrypts it. If the
// writer secret is present the holder may also write. Capabilities are
// never mutated after creation.
type Capability struct {
	owner          identity.PublicIdentity
	writer         identity.PublicIdentity
	writerIdentity *identity.Identity
	mapKey         [MapKeySize]byte
	dataKey        crypto.SymmetricKey
}

// New returns a writable capability.
func New(owner identity.PublicIdentity, writer *identity.Identity, mapKey [MapKeySize]byte, dataKey crypto.SymmetricKey) *Capability {
	return &Capability{
		owner:          owner,
		writer:         writer.Public(),
		writerIdentity: writer,
		mapKey:         mapKey,
		dataKey:        dataKey,
	}
}

// NewReadOnly returns a capability without writer secret.
func NewReadOnly(owner, writer identity.PublicIdentity, mapKey [MapKeySize]byte, dataKey crypto.SymmetricKey) *Capability {
	return &Capability{
		owner:   owner,
		writer:  writer,
		mapKey:  mapKey,
		dataKey: dataKey,
	}
}

// NewRandom returns a writable capability for a fresh location: random map
// key and random data key.
func NewRandom(owner identity.PublicIdentity, writer *identity.Identity) (*Capability, error) {
	raw, err := crypto.RandomBytes(MapKeySize)
	if err != nil {
		return nil, err
	}
	var mapKey [MapKeySize]byte
	copy(mapKey[:], raw)
	dataKey, err := crypto.NewRandomSymmetricKey()
	if err != nil {
		return nil, err
	}
	return New(owner, writer, mapKey, dataKey), nil
}

func (c *Capability) Owner() identity.PublicIdentity {
	return c.owner
}

func (c *Capability) Writer() identity.PublicIdentity {
	return c.writer
}

// WriterIdentity returns the writer's secret keys if the capability grants
// write access.
func (c *Capability) WriterIdentity() (*identity.Identity, bool) {
	return c.writerIdentity, c.writerIdentity != nil
}

func (c *Capability) IsWritable() bool {
	return c.writerIdentity != nil
}

func (c *Capability) MapKey() [MapKeySize]byte {
	return c.mapKey
}

func (c *Capability) DataKey() crypto.SymmetricKey {
	return c.dataKey
}

// ReadOnly returns a copy stripped of the writer secret.
func (c *Capability) ReadOnly() *Capability {
	return NewReadOnly(c.owner, c.writer, c.mapKey, c.dataKey)
}

// Serialize encodes ownerPublic(64) ‖ writerPublic(64) ‖ mapKey(32) ‖
// dataKey(32) and, if withWriterSecret is set, ‖ writerSecret(96). Callers
// decide per destination whether the receiver is meant to gain write access.
func (c *Capability) Serialize(withWriterSecret bool) ([]byte, error) {
	if withWriterSecret && c.writerIdentity == nil {
		return nil, ErrNoWriterSecret
	}
	size := PublicSize
	if withWriterSecret {
		size = WritableSize
	}
	out := make([]byte, 0, size)
	out = append(out, c.owner.PublicKeys()...)
	out = append(out, c.writer.PublicKeys()...)
	out = append(out, c.mapKey[:]...)
	out = append(out, c.dataKey.Raw()...)
	if withWriterSecret {
		out = append(out, c.writerIdentity.SecretKeys()...)
	}
	return out, nil
}

// Deserialize decodes either encoding produced by Serialize.
func Deserialize(b []byte) (*Capability, error) {
	if len(b) != PublicSize && len(b) != WritableSize {
		return nil, fmt.Errorf("%w: length %d", ErrMalformed, len(b))
	}
	const (
		ownerEnd  = identity.PublicKeysSize
		writerEnd = ownerEnd + identity.PublicKeysSize
		mapKeyEnd = writerEnd + MapKeySize
	)
	owner, err := identity.FromPublicKeys(b[:ownerEnd])
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %v", ErrMalformed, err)
	}
	writer, err := identity.FromPublicKeys(b[ownerEnd:writerEnd])
	if err != nil {
		return nil, fmt.Errorf("%w: writer: %v", ErrMalformed, err)
	}
	var mapKey [MapKeySize]byte
	copy(mapKey[:], b[writerEnd:mapKeyEnd])
	dataKey, err := crypto.UnmarshallSymmetricKey(b[mapKeyEnd:PublicSize])
	if err != nil {
		return nil, fmt.Errorf("%w: data key: %v", ErrMalformed, err)
	}
	if len(b) == PublicSize {
		return NewReadOnly(owner, writer, mapKey, dataKey), nil
	}
	writerIdentity, err := identity.FromEncodedKeys(b[ownerEnd:writerEnd], b[PublicSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: writer secret: %v", ErrMalformed, err)
	}
	return New(owner, writerIdentity, mapKey, dataKey), nil
}

// Equals compares every field including the presence of the writer secret.
func (c *Capability) Equals(o *Capability) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.owner != o.owner || c.writer != o.writer || c.mapKey != o.mapKey || !c.dataKey.Equals(o.dataKey) {
		return false
	}
	if c.IsWritable() != o.IsWritable() {
		return false
	}
	if c.IsWritable() {
		return bytes.Equal(c.writerIdentity.SecretKeys(), o.writerIdentity.SecretKeys())
	}
	return true
}
