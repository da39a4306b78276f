package fmap

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/buffer"
)

// Map is a flat map. Create maps with New.
type Map struct {
	keys, values buffer.Buffer
	length       int
}

// New creates an empty map with room for nelem entries. Keys are ktsize bytes long,
// values vtsize bytes.
func New(nelem, ktsize, vtsize int, opts ...buffer.Option) (*Map, error) {
	if nelem <= 0 || ktsize <= 0 || vtsize <= 0 {
		tracer().Errorf("invalid parameter")
		return nil, fmt.Errorf("%w: map of %d entries with key size %d and value size %d",
			dsc.ErrInvalidArgument, nelem, ktsize, vtsize)
	}
	keys, err := buffer.Create(nelem, ktsize, opts...)
	if err != nil {
		return nil, err
	}
	values, err := buffer.Create(nelem, vtsize, opts...)
	if err != nil {
		return nil, errors.Join(err, keys.Destroy())
	}
	return &Map{keys: keys, values: values}, nil
}

// Put sets the value for key. If key is not yet present, a new entry is added and the
// buffers are grown if necessary.
func (m *Map) Put(key, value []byte) error {
	if err := m.checkEntry("put", key, value); err != nil {
		return err
	}
	if i := m.indexOf(key); i >= 0 {
		copy(m.value(i), value)
		return nil
	}
	if err := m.grow(); err != nil {
		return err
	}
	copy(m.key(m.length), key)
	copy(m.value(m.length), value)
	m.length++
	return nil
}

// Get returns the value for key. The slice aliases the map's buffer and is valid until
// the next change to the map.
func (m *Map) Get(key []byte) ([]byte, error) {
	if err := m.check("get"); err != nil {
		return nil, err
	}
	i := m.indexOf(key)
	if i < 0 {
		return nil, fmt.Errorf("%w: key %x", dsc.ErrNotFound, key)
	}
	return m.value(i), nil
}

// Delete removes the entry for key. The last entry takes its place.
func (m *Map) Delete(key []byte) error {
	if err := m.check("delete"); err != nil {
		return err
	}
	i := m.indexOf(key)
	if i < 0 {
		return fmt.Errorf("%w: key %x", dsc.ErrNotFound, key)
	}
	last := m.length - 1
	if i != last {
		copy(m.key(i), m.key(last))
		copy(m.value(i), m.value(last))
	}
	m.length--
	return nil
}

// Replace changes the key of an entry from oldKey to newKey, keeping its value.
// newKey may not be the key of another entry.
func (m *Map) Replace(oldKey, newKey []byte) error {
	if err := m.checkKey("replace", newKey); err != nil {
		return err
	}
	i := m.indexOf(oldKey)
	if i < 0 {
		return fmt.Errorf("%w: key %x", dsc.ErrNotFound, oldKey)
	}
	if j := m.indexOf(newKey); j >= 0 && j != i {
		return fmt.Errorf("%w: key %x already present", dsc.ErrInvalidArgument, newKey)
	}
	copy(m.key(i), newKey)
	return nil
}

// ContainsKey is true if there is an entry for key.
func (m *Map) ContainsKey(key []byte) bool {
	return m.check("contains") == nil && m.indexOf(key) >= 0
}

// ContainsValue is true if any entry has the given value.
func (m *Map) ContainsValue(value []byte) bool {
	if m.check("contains") != nil {
		return false
	}
	for i := 0; i < m.length; i++ {
		if bytes.Equal(m.value(i), value) {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.length
}

// Each calls f for every entry, until f returns false. f must not change the map.
func (m *Map) Each(f func(key, value []byte) bool) {
	if m.check("each") != nil {
		return
	}
	for i := 0; i < m.length; i++ {
		if !f(m.key(i), m.value(i)) {
			return
		}
	}
}

// Destroy releases both buffers of the map. Destroying a map twice is an
// error (dsc.ErrInvalidAddress).
func (m *Map) Destroy() error {
	if err := m.check("destroy"); err != nil {
		return err
	}
	m.length = 0
	return errors.Join(m.keys.Destroy(), m.values.Destroy())
}

// --- Helpers ---------------------------------------------------------------

func (m *Map) indexOf(key []byte) int {
	for i := 0; i < m.length; i++ {
		if bytes.Equal(m.key(i), key) {
			return i
		}
	}
	return -1
}

func (m *Map) key(i int) []byte {
	e, err := m.keys.Element(i)
	assertThat(err == nil, "key index %d out of range", i)
	return e
}

func (m *Map) value(i int) []byte {
	e, err := m.values.Element(i)
	assertThat(err == nil, "value index %d out of range", i)
	return e
}

// grow doubles both buffers if they are full. If the value buffer cannot grow, the key
// buffer is shrunk back.
func (m *Map) grow() error {
	n, _ := m.keys.Capacity()
	if m.length < n {
		return nil
	}
	if err := m.keys.Resize(2 * n); err != nil {
		return err
	}
	if err := m.values.Resize(2 * n); err != nil {
		return errors.Join(err, m.keys.Resize(n))
	}
	tracer().Debugf("map grown to %d entries", 2*n)
	return nil
}

func (m *Map) check(op string) error {
	if m == nil || m.keys.IsEmpty() || m.values.IsEmpty() {
		tracer().Errorf("the map points to an invalid address")
		return fmt.Errorf("%w: %s on nil or destroyed map", dsc.ErrInvalidAddress, op)
	}
	return nil
}

// checkKey checks the map and the size of key.
func (m *Map) checkKey(op string, key []byte) error {
	if err := m.check(op); err != nil {
		return err
	}
	if len(key) != m.keys.ElementSize() {
		return fmt.Errorf("%w: key of %d bytes, expected %d", dsc.ErrInvalidArgument, len(key), m.keys.ElementSize())
	}
	return nil
}

// checkEntry checks the map and the sizes of key and value.
func (m *Map) checkEntry(op string, key, value []byte) error {
	if err := m.checkKey(op, key); err != nil {
		return err
	}
	if len(value) != m.values.ElementSize() {
		return fmt.Errorf("%w: value of %d bytes, expected %d", dsc.ErrInvalidArgument, len(value), m.values.ElementSize())
	}
	return nil
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("fmap: "+msg, msgargs...)
		panic(msg)
	}
}
