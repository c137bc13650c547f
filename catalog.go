package gotrans

// Catalog is the ordered, immutable list of engines tried on a cache miss.
type Catalog struct {
	engines []EngineID
}

// NewCatalog builds a catalog from engines in priority order.
// It fails on an empty list, an empty id or a duplicate id.
func NewCatalog(engines []EngineID) (*Catalog, error) {
	if len(engines) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[EngineID]bool, len(engines))
	list := make([]EngineID, 0, len(engines))
	for _, id := range engines {
		if id == "" {
			return nil, &CatalogError{Engine: id, Message: "empty engine id"}
		}
		if seen[id] {
			return nil, &CatalogError{Engine: id, Message: "duplicate engine id"}
		}
		seen[id] = true
		list = append(list, id)
	}

	return &Catalog{engines: list}, nil
}

// Engines returns a copy of the engine ids in priority order.
func (c *Catalog) Engines() []EngineID {
	out := make([]EngineID, len(c.engines))
	copy(out, c.engines)
	return out
}

// Len returns the number of engines.
func (c *Catalog) Len() int {
	return len(c.engines)
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id EngineID) bool {
	for _, e := range c.engines {
		if e == id {
			return true
		}
	}
	return false
}
