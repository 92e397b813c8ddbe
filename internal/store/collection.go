package store

import "sync"

// Collection is a mutex-guarded, insertion-ordered set of records with
// monotonic int64 IDs. IDs are assigned max(existing)+1 and never reused
// after deletion; creates serialize under the collection lock so no two
// creates observe the same next ID.
type Collection[T any] struct {
	mu     sync.RWMutex
	byID   map[int64]*T
	order  []int64
	nextID int64

	getID func(*T) int64
	setID func(*T, int64)
}

func NewCollection[T any](getID func(*T) int64, setID func(*T, int64)) *Collection[T] {
	return &Collection[T]{
		byID:   make(map[int64]*T),
		nextID: 1,
		getID:  getID,
		setID:  setID,
	}
}

// Create assigns the next ID, stores a copy of v and returns the assigned
// ID. The optional hook runs under the lock with the assigned ID and the
// count of records that existed before this create; it is used for
// derived identity fields like patient MRNs.
func (c *Collection[T]) Create(v *T, hook func(v *T, id int64, prior int)) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	cp := *v
	c.setID(&cp, id)
	if hook != nil {
		hook(&cp, id, len(c.order))
	}

	c.byID[id] = &cp
	c.order = append(c.order, id)

	*v = cp
	return id
}

// Insert stores v under its existing ID, used for seeding. It keeps the
// next-ID watermark above every inserted ID.
func (c *Collection[T]) Insert(v *T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.getID(v)
	cp := *v
	c.byID[id] = &cp
	c.order = append(c.order, id)
	if id >= c.nextID {
		c.nextID = id + 1
	}
}

// Get returns a copy of the record, or false when absent.
func (c *Collection[T]) Get(id int64) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

// Update runs mutate on the stored record under the lock, serializing
// writes to the same entity. The merge semantics live in the mutate
// closure; omitted fields are preserved because the closure only touches
// what it was given.
func (c *Collection[T]) Update(id int64, mutate func(*T)) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	mutate(v)
	cp := *v
	return &cp, true
}

// Delete removes the record. The ID is not reused.
func (c *Collection[T]) Delete(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns copies of all records matching keep (nil keeps everything),
// in insertion order.
func (c *Collection[T]) List(keep func(*T) bool) []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		v := c.byID[id]
		if keep == nil || keep(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out
}

// Len returns the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
