package store

import (
	"fmt"
	"sync"

	"github.com/medboard/hospital-api/internal/model"
)

// DocumentCollection stores documents under string IDs of the form
// doc-{n}. It follows the same ordering and copy semantics as Collection.
type DocumentCollection struct {
	mu    sync.RWMutex
	byID  map[string]*model.Document
	order []string
	seq   int64
}

func NewDocumentCollection() *DocumentCollection {
	return &DocumentCollection{byID: make(map[string]*model.Document)}
}

func (c *DocumentCollection) Create(doc *model.Document) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	id := fmt.Sprintf("doc-%d", c.seq)

	cp := *doc
	cp.ID = id
	c.byID[id] = &cp
	c.order = append(c.order, id)

	*doc = cp
	return id
}

func (c *DocumentCollection) Get(id string) (*model.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

func (c *DocumentCollection) Delete(id string) bool {
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

// ListByOwner returns the documents owned by one staff member or patient,
// in upload order.
func (c *DocumentCollection) ListByOwner(ownerType model.DocumentOwner, ownerID int64) []*model.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.Document, 0)
	for _, id := range c.order {
		v := c.byID[id]
		if v.OwnerType == ownerType && v.OwnerID == ownerID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out
}
