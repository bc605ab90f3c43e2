package linked_hashmap

import "container/list"

// LinkedHashmap provides a basic linked hashmap container. It maintains insertion order
// via a linked list. This gives O(1) runtime to push a new element to the back of the list.
// The additional hashmap allows O(1) lookup and in-place update of any element by key.
// Not threadsafe.
type LinkedHashmap[V any] struct {
	linkedList *list.List
	hashMap    map[string]*list.Element
}

func NewLinkedHashmap[V any](sizeEst int) *LinkedHashmap[V] {
	return &LinkedHashmap[V]{
		linkedList: list.New(),
		hashMap:    make(map[string]*list.Element, sizeEst),
	}
}

// We store both the key and value in the linked list so iteration yields the key.
type kv[V any] struct {
	key   string
	value V
}

// Put overwrites the value of an existing key without moving it, or appends
// the key to the back when it is new.
func (l *LinkedHashmap[V]) Put(key string, val V) {
	if elem, ok := l.hashMap[key]; ok {
		elem.Value.(*kv[V]).value = val
		return
	}
	l.PushBack(key, val)
}

// PushBack appends key to the back.  An existing key is moved to the back.
func (l *LinkedHashmap[V]) PushBack(key string, val V) {
	if elem, ok := l.hashMap[key]; ok {
		l.linkedList.Remove(elem)
	}
	l.hashMap[key] = l.linkedList.PushBack(&kv[V]{key: key, value: val})
}

func (l *LinkedHashmap[V]) Len() int {
	return len(l.hashMap)
}

// Same semantics as the golang map -- returns the element + true if the key exists
// in the map and the zero value, false otherwise.
func (l *LinkedHashmap[V]) Get(key string) (V, bool) {
	elem, ok := l.hashMap[key]
	if !ok {
		var zero V
		return zero, false
	}
	return elem.Value.(*kv[V]).value, true
}

// Keys returns the keys in insertion order.
func (l *LinkedHashmap[V]) Keys() []string {
	keys := make([]string, 0, len(l.hashMap))
	for e := l.linkedList.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*kv[V]).key)
	}
	return keys
}

// Each calls f for every entry in insertion order, stopping at the first
// false return.
func (l *LinkedHashmap[V]) Each(f func(key string, val V) bool) {
	for e := l.linkedList.Front(); e != nil; e = e.Next() {
		keyVal := e.Value.(*kv[V])
		if !f(keyVal.key, keyVal.value) {
			return
		}
	}
}

// Clone returns a shallow copy with the same ordering.
func (l *LinkedHashmap[V]) Clone() *LinkedHashmap[V] {
	c := NewLinkedHashmap[V](l.Len())
	l.Each(func(key string, val V) bool {
		c.PushBack(key, val)
		return true
	})
	return c
}

func (l *LinkedHashmap[V]) Clear() {
	l.linkedList.Init()
	l.hashMap = make(map[string]*list.Element)
}
