// Package staticdata holds the capability directory: the signed list of an
// identity's outstanding delegations.
package staticdata

import (
	"errors"
	"fmt"

	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/util/wire"
)

// MaxEntries bounds the number of entries accepted by Deserialize.
const MaxEntries = 1 << 16

var ErrMalformedDirectory = errors.New("malformed directory")

// Entry is one delegation labelled by the sharing identity it was issued to.
type Entry struct {
	Writer     identity.PublicIdentity
	Capability *capability.Capability
}

// Directory is an immutable versioned value. Append returns the next
// version and leaves the receiver untouched, so a rejected update is rolled
// back by simply keeping the old value.
type Directory struct {
	version uint64
	entries []Entry
}

// New returns an empty directory with version zero.
func New() Directory {
	return Directory{}
}

func (d Directory) Version() uint64 {
	return d.version
}

func (d Directory) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries in append order.
func (d Directory) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Append returns a new version with the entry added at the end. Only the
// public form of the capability is retained.
func (d Directory) Append(writer identity.PublicIdentity, c *capability.Capability) Directory {
	entries := make([]Entry, len(d.entries), len(d.entries)+1)
	copy(entries, d.entries)
	entries = append(entries, Entry{Writer: writer, Capability: c.ReadOnly()})
	return Directory{version: d.version + 1, entries: entries}
}

// Find returns the entry issued to writer.
func (d Directory) Find(writer identity.PublicIdentity) (Entry, bool) {
	for _, e := range d.entries {
		if e.Writer == writer {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether an entry exists for the given public keys
// encoding.
func (d Directory) Contains(publicKeys []byte) bool {
	writer, err := identity.FromPublicKeys(publicKeys)
	if err != nil {
		return false
	}
	_, ok := d.Find(writer)
	return ok
}

// CheckOwner fails with ErrMalformedDirectory when an entry was issued by
// someone other than owner.
func (d Directory) CheckOwner(owner identity.PublicIdentity) error {
	for i, e := range d.entries {
		if !e.Capability.Owner().Equals(owner) {
			return fmt.Errorf("%w: entry %d owned by %s", ErrMalformedDirectory, i, e.Capability.Owner())
		}
	}
	return nil
}

// Serialize encodes u32 count followed by u32-length-prefixed public
// capability encodings.
func (d Directory) Serialize() []byte {
	w := wire.NewWriter()
	w.WriteUint32(uint32(len(d.entries)))
	for _, e := range d.entries {
		// entries are stored read-only so this cannot fail
		raw, _ := e.Capability.Serialize(false)
		w.WriteArray(raw)
	}
	return w.Bytes()
}

// Deserialize decodes a directory produced by Serialize. The version is set
// to the number of entries.
func Deserialize(b []byte) (Directory, error) {
	r := wire.NewReader(b)
	n, err := r.ReadCount(4 + capability.PublicSize)
	if err != nil {
		return Directory{}, fmt.Errorf("%w: %v", ErrMalformedDirectory, err)
	}
	if n > MaxEntries {
		return Directory{}, fmt.Errorf("%w: %d entries", ErrMalformedDirectory, n)
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		raw, err := r.ReadArray(capability.PublicSize)
		if err != nil {
			return Directory{}, fmt.Errorf("%w: entry %d: %v", ErrMalformedDirectory, i, err)
		}
		c, err := capability.Deserialize(raw)
		if err != nil {
			return Directory{}, fmt.Errorf("%w: entry %d: %v", ErrMalformedDirectory, i, err)
		}
		if c.IsWritable() {
			return Directory{}, fmt.Errorf("%w: entry %d carries a writer secret", ErrMalformedDirectory, i)
		}
		entries = append(entries, Entry{Writer: c.Writer(), Capability: c})
	}
	if err = r.Done(); err != nil {
		return Directory{}, fmt.Errorf("%w: %v", ErrMalformedDirectory, err)
	}
	return Directory{version: uint64(n), entries: entries}, nil
}

// RegistrationPayload is the byte string the owner signs for both username
// registration and directory updates:
// utf8(username) ‖ owner.PublicKeys() ‖ serializedDirectory.
func RegistrationPayload(username string, owner identity.PublicIdentity, serialized []byte) []byte {
	out := make([]byte, 0, len(username)+identity.PublicKeysSize+len(serialized))
	out = append(out, username...)
	out = append(out, owner.PublicKeys()...)
	return append(out, serialized...)
}

// SignedPayload signs the registration payload of d with owner.
func (d Directory) SignedPayload(username string, owner *identity.Identity) (serialized, signed []byte) {
	serialized = d.Serialize()
	signed = owner.Sign(RegistrationPayload(username, owner.Public(), serialized))
	return
}
