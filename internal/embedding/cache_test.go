package embedding

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueryCache_SetGet(t *testing.T) {
	c := newQueryCache(2)
	c.set("a", []float32{1})
	if v, ok := c.get("a"); !ok || v[0] != 1 {
		t.Errorf("get(a) = %v, %v", v, ok)
	}
	if _, ok := c.get("missing"); ok {
		t.Error("missing key should not be found")
	}
}

func TestQueryCache_EvictsOldest(t *testing.T) {
	c := newQueryCache(2)
	c.set("a", []float32{1})
	c.set("b", []float32{2})
	c.get("a") // bump a; b is now oldest
	c.set("c", []float32{3})
	if _, ok := c.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Error("a should survive after recency bump")
	}
	if _, ok := c.get("c"); !ok {
		t.Error("c should be present")
	}
}

// Run with -race: concurrent gets bump the LRU list, so they must hold the
// write lock even though they look read-only.
func TestQueryCache_ConcurrentAccess(t *testing.T) {
	c := newQueryCache(16)
	for i := 0; i < 8; i++ {
		c.set(fmt.Sprintf("q%d", i), []float32{float32(i)})
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("q%d", (g+i)%8)
				if v, ok := c.get(key); ok && len(v) != 1 {
					t.Errorf("corrupt value for %s: %v", key, v)
				}
				if i%10 == 0 {
					c.set(key, []float32{float32(i)})
				}
			}
		}(g)
	}
	wg.Wait()
}
