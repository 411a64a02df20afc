package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog — реестр всех предметов, сгруппированный по категориям и файлам.
//
// Thread-safety: RWMutex; reads dominate (one full scan per UI refresh).
type Catalog struct {
	items  map[FormID]*Item
	byFile map[string][]*Item
	byCat  map[Category][]*Item

	mu sync.RWMutex
}

// NewCatalog создаёт пустой каталог.
func NewCatalog() *Catalog {
	return &Catalog{
		items:  make(map[FormID]*Item),
		byFile: make(map[string][]*Item),
		byCat:  make(map[Category][]*Item),
	}
}

// Add регистрирует предмет в каталоге.
//
// Returns:
//   - error: nil item or duplicate form ID
func (c *Catalog) Add(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[item.FormID()]; exists {
		return fmt.Errorf("item %s already exists in catalog", item.FormID())
	}

	c.items[item.FormID()] = item
	c.byFile[item.File()] = append(c.byFile[item.File()], item)
	c.byCat[item.Category()] = append(c.byCat[item.Category()], item)
	return nil
}

// Get возвращает предмет по ID или nil.
func (c *Catalog) Get(id FormID) *Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[id]
}

// Len возвращает количество предметов.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// ByCategory returns a copy of all items of the category in registration order.
func (c *Catalog) ByCategory(cat Category) []*Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Item(nil), c.byCat[cat]...)
}

// ByFile returns a copy of all items owned by file.
func (c *Catalog) ByFile(file string) []*Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Item(nil), c.byFile[file]...)
}

// Files returns owning file names sorted case-insensitively.
func (c *Catalog) Files() []string {
	c.mu.RLock()
	files := make([]string, 0, len(c.byFile))
	for f := range c.byFile {
		files = append(files, f)
	}
	c.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files
}
