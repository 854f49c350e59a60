package orders

// Order is not annotated and never rendered.
type Order struct{}

// Fetch loads an order by id.
//
// Orders are cached for a minute.
//
// arch:group shop/orders
// arch:technology Go
// arch:uses Store "reads orders from" db
func Fetch(id string) (*Order, error) {
	return nil, nil
}

// Store persists orders.
//
// arch:group shop/orders
// arch:uses billing.Charge "charges via"
type Store struct{}

// Save writes an order.
// arch:group shop/orders
// arch:property owner=team-orders
func (s *Store) Save(o *Order) error {
	return nil
}
