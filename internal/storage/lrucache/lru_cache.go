package lrucache

import (
	"container/list"
	"context"
	"sync"

	"ecovision/internal/metrics"
)

type CacheItem[K comparable, V any] struct {
	Key      K
	Value    V
	Priority int
}

/*
LRUCache keeps the most recently touched items at the front of a linked list.
On overflow it evicts, starting from the back, the first item carrying the
highest priority number (priority 1 is the most important indicator).
*/
type LRUCache[K comparable, V any] struct {
	capacity      int
	items         map[K]*list.Element
	order         *list.List
	priorityCount map[int]int
	maxPriority   int
	mu            sync.Mutex
	saveChan      chan CacheItem[K, V]
	ctx           context.Context
}

func NewLRUCache[K comparable, V any](ctx context.Context, capacity int, chanSize int) *LRUCache[K, V] {
	cache := &LRUCache[K, V]{
		capacity:      capacity,
		items:         make(map[K]*list.Element, capacity),
		order:         list.New(),
		priorityCount: make(map[int]int),
		saveChan:      make(chan CacheItem[K, V], chanSize),
		ctx:           ctx,
	}

	go cache.runUpdater(ctx)
	return cache
}

func (c *LRUCache[K, V]) forgetPriority(priority int) {
	c.priorityCount[priority]--
	if c.priorityCount[priority] > 0 {
		return
	}
	delete(c.priorityCount, priority)
	if priority != c.maxPriority {
		return
	}
	newMax := 0
	for prio := range c.priorityCount {
		if prio > newMax {
			newMax = prio
		}
	}
	c.maxPriority = newMax
}

func (c *LRUCache[K, V]) rememberPriority(priority int) {
	c.priorityCount[priority]++
	if priority > c.maxPriority {
		c.maxPriority = priority
	}
}

func (c *LRUCache[K, V]) remove(elem *list.Element) {
	item := elem.Value.(*CacheItem[K, V])
	c.order.Remove(elem)
	delete(c.items, item.Key)
	c.forgetPriority(item.Priority)
}

// evict drops the least recently used item among those with the max priority.
func (c *LRUCache[K, V]) evict() {
	for e := c.order.Back(); e != nil; e = e.Prev() {
		if e.Value.(*CacheItem[K, V]).Priority == c.maxPriority {
			c.remove(e)
			return
		}
	}
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*CacheItem[K, V]).Value, true
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// GetValues returns every cached value, most recently used first.
func (c *LRUCache[K, V]) GetValues() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]V, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value.(*CacheItem[K, V]).Value)
	}
	return result
}

// Update queues items to be stored by the updater goroutine.
func (c *LRUCache[K, V]) Update(rows []CacheItem[K, V]) {
	for i := range rows {
		select {
		case c.saveChan <- rows[i]:
		default:
			go func(r CacheItem[K, V]) {
				select {
				case c.saveChan <- r:
				case <-c.ctx.Done():
				}
			}(rows[i])
		}
	}
}

func (c *LRUCache[K, V]) Set(key K, value V, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*CacheItem[K, V])
		if item.Priority != priority {
			c.forgetPriority(item.Priority)
			item.Priority = priority
			c.rememberPriority(priority)
		}
		item.Value = value
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evict()
	}

	elem := c.order.PushFront(&CacheItem[K, V]{
		Key:      key,
		Value:    value,
		Priority: priority,
	})
	c.items[key] = elem
	c.rememberPriority(priority)
}

func (c *LRUCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// BatchGet returns the cached values for keys and the keys that were missing.
func (c *LRUCache[K, V]) BatchGet(keys []K) ([]V, []K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]V, 0, len(keys))
	notFound := make([]K, 0)
	for _, key := range keys {
		if elem, ok := c.items[key]; ok {
			c.order.MoveToFront(elem)
			result = append(result, elem.Value.(*CacheItem[K, V]).Value)
			continue
		}
		notFound = append(notFound, key)
	}
	metrics.RecordCacheLookup("lru", len(result), len(notFound))
	return result, notFound
}

func (c *LRUCache[K, V]) runUpdater(ctx context.Context) {
	for {
		select {
		case row, ok := <-c.saveChan:
			if !ok {
				return
			}
			c.Set(row.Key, row.Value, row.Priority)
		case <-ctx.Done():
			return
		}
	}
}
