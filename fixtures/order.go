package fixtures

import (
	"fmt"
	"strings"
)

// Order sorts tables so that every table comes after the tables its
// foreign keys reference. A reference cycle is an error naming the
// cycle path.
func Order(tables []*Table) ([]*Table, error) {
	const (
		unseen = iota
		visiting
		done
	)
	state := map[*Table]int{}
	order := make([]*Table, 0, len(tables))

	var visit func(t *Table, path []*Table) error
	visit = func(t *Table, path []*Table) error {
		switch state[t] {
		case done:
			return nil
		case visiting:
			names := make([]string, 0, len(path)+1)
			start := 0
			for i, p := range path {
				if p == t {
					start = i
					break
				}
			}
			for _, p := range path[start:] {
				names = append(names, p.Name)
			}
			names = append(names, t.Name)
			return fmt.Errorf("cycle detected in foreign key constraints: %s", strings.Join(names, " -> "))
		}
		state[t] = visiting
		for _, fk := range t.ForeignKeys {
			if err := visit(fk.RefTable, append(path, t)); err != nil {
				return err
			}
		}
		state[t] = done
		order = append(order, t)
		return nil
	}

	for _, t := range tables {
		if err := visit(t, nil); err != nil {
			return nil, err
		}
	}

	return order, nil
}
