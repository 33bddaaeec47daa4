package iostore

// Tree is an ordered view of one namespace. Keys passed to and returned
// from a Tree do not carry the namespace prefix.
type Tree struct {
	s  *Store
	ns Namespace
}

// Namespace returns the namespace of the tree.
func (t *Tree) Namespace() Namespace {
	return t.ns
}

// Insert adds a key to the write batch of the store. It becomes visible
// to readers after Store.Flush.
func (t *Tree) Insert(key, val []byte) error {
	return t.s.insert(t.key(key), val)
}

// Get returns the value of key.
func (t *Tree) Get(key []byte) ([]byte, bool, error) {
	return t.s.get(t.key(key))
}

// Predecessor returns the largest key of the tree that is less than key.
func (t *Tree) Predecessor(key []byte) ([]byte, []byte, bool, error) {
	return t.neighbour(key, true)
}

// Successor returns the smallest key of the tree that is greater than key.
func (t *Tree) Successor(key []byte) ([]byte, []byte, bool, error) {
	return t.neighbour(key, false)
}

func (t *Tree) neighbour(key []byte, reverse bool) ([]byte, []byte, bool, error) {
	k, v, ok, err := t.s.neighbour([]byte{byte(t.ns)}, t.key(key), reverse)
	if err != nil || !ok {
		return nil, nil, ok, err
	}
	return k[1:], v, true, nil
}

func (t *Tree) key(k []byte) []byte {
	res := make([]byte, len(k)+1)
	res[0] = byte(t.ns)
	copy(res[1:], k)
	return res
}
