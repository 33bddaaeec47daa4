package accrun

import "bytes"

// Resolve finds the taxon ID of an accession. The version suffix is
// removed first. An accession stored in the index resolves directly.
// Otherwise it resolves only when its nearest stored neighbours on both
// sides carry the same taxon ID, which means it lies inside their run.
func Resolve(r Reader, acc string) (uint32, error) {
	bare := StripVersion(acc)
	key := []byte(bare)

	val, ok, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	if ok {
		return decode(bare, key, val)
	}

	_, prev, ok, err := r.Predecessor(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, NotFoundError(acc)
	}

	_, next, ok, err := r.Successor(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, NotFoundError(acc)
	}

	if !bytes.Equal(prev, next) {
		return 0, NotFoundError(acc)
	}
	return decode(bare, key, prev)
}

func decode(acc string, key, val []byte) (uint32, error) {
	id, ok := DecodeID(val)
	if !ok {
		return 0, BadValueError(acc, key, val)
	}
	return id, nil
}
