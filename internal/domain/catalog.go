package domain

import "fmt"

// Catalog es la tabla de consulta inmutable de mercados, indexada por ID.
// Se construye una vez al arrancar y conserva el orden del proveedor.
type Catalog struct {
	ordered []Market
	byID    map[string]Market
}

// NewCatalog valida cada mercado y construye el índice. IDs duplicados son
// un error de datos del proveedor.
func NewCatalog(markets []Market) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]Market, 0, len(markets)),
		byID:    make(map[string]Market, len(markets)),
	}
	for _, m := range markets {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("domain.NewCatalog: %w", err)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("domain.NewCatalog: duplicate market id %q", m.ID)
		}
		c.ordered = append(c.ordered, m)
		c.byID[m.ID] = m
	}
	return c, nil
}

// ByID devuelve el mercado con el ID dado, o ErrUnknownMarket.
func (c *Catalog) ByID(id string) (Market, error) {
	m, ok := c.byID[id]
	if !ok {
		return Market{}, fmt.Errorf("domain.Catalog: %w: %q", ErrUnknownMarket, id)
	}
	return m, nil
}

// All devuelve los mercados en el orden del proveedor.
func (c *Catalog) All() []Market {
	out := make([]Market, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory filtra los mercados de una categoría, conservando el orden.
func (c *Catalog) ByCategory(cat Category) []Market {
	var out []Market
	for _, m := range c.ordered {
		if m.Category == cat {
			out = append(out, m)
		}
	}
	return out
}

// Len devuelve el número de mercados del catálogo.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
