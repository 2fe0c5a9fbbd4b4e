package inventory

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pfassina/labtracker/internal/cell"
)

// Group is a derived view of the cells sharing a group name.
type Group struct {
	Name  string
	Color string
	Keys  []cell.Key
}

func (g Group) Size() int { return len(g.Keys) }

// Groups returns every group in natural name order.
func (inv *Inventory) Groups() []Group {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return groupsOf(inv.reg)
}

// Group returns the group called name.
func (inv *Inventory) Group(name string) (Group, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	keys := inv.reg.Members(name)
	if len(keys) == 0 {
		return Group{}, false
	}
	return Group{Name: name, Color: inv.reg.Get(keys[0]).GroupColor, Keys: keys}, true
}

func groupsOf(reg *Registry) []Group {
	byName := map[string]*Group{}
	var order []string
	reg.Each(func(k cell.Key, r cell.Record) {
		if !r.Linked || r.GroupName == "" {
			return
		}
		g, ok := byName[r.GroupName]
		if !ok {
			g = &Group{Name: r.GroupName, Color: r.GroupColor}
			byName[r.GroupName] = g
			order = append(order, r.GroupName)
		}
		g.Keys = append(g.Keys, k)
	})
	sort.Slice(order, func(i, j int) bool { return NameLess(order[i], order[j]) })
	out := make([]Group, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// NameLess orders group names so that Group2 sorts before Group10.
func NameLess(a, b string) bool {
	pa, na, oka := splitNumber(a)
	pb, nb, okb := splitNumber(b)
	if oka && okb && pa == pb && na != nb {
		return na < nb
	}
	return a < b
}

func splitNumber(s string) (string, int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return strings.ToLower(s[:i]), n, true
}

func sortKeys(keys []cell.Key) {
	sort.Slice(keys, func(i, j int) bool { return cell.Less(keys[i], keys[j]) })
}
