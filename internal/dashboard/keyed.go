package dashboard

// KeyedList binds a rendered list to entity ids. Reconcile keeps the row of
// every id whose content did not change, so views only repaint what moved.
type KeyedList[K comparable, T comparable] struct {
	key   func(T) K
	order []K
	rows  map[K]*Row[K, T]
}

// Row is one rendered entry. Version increases each time its content changes.
type Row[K comparable, T comparable] struct {
	Key     K
	Item    T
	Version int
}

// Patch summarizes a reconciliation.
type Patch[K comparable] struct {
	Added   []K
	Updated []K
	Removed []K
	Kept    int
}

func (p Patch[K]) Empty() bool {
	return len(p.Added) == 0 && len(p.Updated) == 0 && len(p.Removed) == 0
}

func NewKeyedList[K comparable, T comparable](key func(T) K) *KeyedList[K, T] {
	return &KeyedList[K, T]{
		key:  key,
		rows: make(map[K]*Row[K, T]),
	}
}

// Reconcile replaces the list content with items, reusing unchanged rows.
// Later duplicates of a key are ignored.
func (l *KeyedList[K, T]) Reconcile(items []T) Patch[K] {
	var patch Patch[K]
	seen := make(map[K]bool, len(items))
	order := make([]K, 0, len(items))

	for _, item := range items {
		k := l.key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)

		row, ok := l.rows[k]
		switch {
		case !ok:
			l.rows[k] = &Row[K, T]{Key: k, Item: item, Version: 1}
			patch.Added = append(patch.Added, k)
		case row.Item != item:
			row.Item = item
			row.Version++
			patch.Updated = append(patch.Updated, k)
		default:
			patch.Kept++
		}
	}

	for _, k := range l.order {
		if !seen[k] {
			delete(l.rows, k)
			patch.Removed = append(patch.Removed, k)
		}
	}
	l.order = order
	return patch
}

// Rows returns a copy of the rows in display order.
func (l *KeyedList[K, T]) Rows() []Row[K, T] {
	out := make([]Row[K, T], 0, len(l.order))
	for _, k := range l.order {
		out = append(out, *l.rows[k])
	}
	return out
}

// Get returns the current item bound to k.
func (l *KeyedList[K, T]) Get(k K) (T, bool) {
	row, ok := l.rows[k]
	if !ok {
		var zero T
		return zero, false
	}
	return row.Item, true
}

func (l *KeyedList[K, T]) Len() int {
	return len(l.order)
}
