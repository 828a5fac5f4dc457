package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultRecentLimit caps the recently-created list when none is set.
const DefaultRecentLimit = 20

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateGroup = errors.New("group name already in use")
	ErrEmptyName      = errors.New("name is empty")
)

// Entry is one saved game configuration.
type Entry struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Mode      string            `json:"mode"`
	Options   map[string]string `json:"options,omitempty"`
	Pinned    bool              `json:"pinned"`
	CreatedAt time.Time         `json:"createdAt"`
}

// sameConfig reports whether two entries describe the same game setup.
func (e Entry) sameConfig(o Entry) bool {
	return e.Name == o.Name && e.Mode == o.Mode && maps.Equal(e.Options, o.Options)
}

// Group is a named, ordered collection of entries.
type Group struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (g *Group) indexOf(entryID string) int {
	return slices.IndexFunc(g.Entries, func(e Entry) bool { return e.ID == entryID })
}

// Library holds the user's groups and the recently-created list.
type Library struct {
	Groups      []*Group `json:"groups"`
	Recent      []Entry  `json:"recent"`
	RecentLimit int      `json:"recentLimit"`
}

// NewLibrary returns an empty library with the default recent limit.
func NewLibrary() *Library {
	return &Library{RecentLimit: DefaultRecentLimit}
}

func newID() string {
	return ulid.Make().String()
}

// Remember records a newly created configuration at the front of the
// recent list. A configuration already present moves to the front instead
// of being duplicated. The list is trimmed to RecentLimit.
func (l *Library) Remember(e Entry) Entry {
	if i := slices.IndexFunc(l.Recent, e.sameConfig); i >= 0 {
		prev := l.Recent[i]
		l.Recent = slices.Delete(l.Recent, i, i+1)
		e.ID = prev.ID
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	l.Recent = slices.Insert(l.Recent, 0, e)

	limit := l.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if len(l.Recent) > limit {
		l.Recent = l.Recent[:limit]
	}
	return e
}

// CreateGroup adds an empty group. Names are trimmed and must be unique
// (case-insensitively).
func (l *Library) CreateGroup(name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create group: %w", ErrEmptyName)
	}
	if l.groupByName(name) != nil {
		return nil, fmt.Errorf("create group %q: %w", name, ErrDuplicateGroup)
	}
	g := &Group{ID: newID(), Name: name}
	l.Groups = append(l.Groups, g)
	return g, nil
}

// RenameGroup changes a group's name under the same rules as CreateGroup.
func (l *Library) RenameGroup(id, name string) error {
	g, err := l.Group(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename group: %w", ErrEmptyName)
	}
	if other := l.groupByName(name); other != nil && other != g {
		return fmt.Errorf("rename group %q: %w", name, ErrDuplicateGroup)
	}
	g.Name = name
	return nil
}

// DeleteGroup removes a group and its entries.
func (l *Library) DeleteGroup(id string) error {
	i := slices.IndexFunc(l.Groups, func(g *Group) bool { return g.ID == id })
	if i < 0 {
		return fmt.Errorf("delete group %s: %w", id, ErrGroupNotFound)
	}
	l.Groups = slices.Delete(l.Groups, i, i+1)
	return nil
}

// Group looks a group up by ID.
func (l *Library) Group(id string) (*Group, error) {
	for _, g := range l.Groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", id, ErrGroupNotFound)
}

func (l *Library) groupByName(name string) *Group {
	for _, g := range l.Groups {
		if strings.EqualFold(g.Name, name) {
			return g
		}
	}
	return nil
}

// AddEntry appends e to a group, assigning an ID if it has none.
func (l *Library) AddEntry(groupID string, e Entry) (Entry, error) {
	g, err := l.Group(groupID)
	if err != nil {
		return Entry{}, err
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	g.Entries = append(g.Entries, e)
	return e, nil
}

// RemoveEntry deletes an entry from a group.
func (l *Library) RemoveEntry(groupID, entryID string) error {
	g, err := l.Group(groupID)
	if err != nil {
		return err
	}
	i := g.indexOf(entryID)
	if i < 0 {
		return fmt.Errorf("remove entry %s: %w", entryID, ErrEntryNotFound)
	}
	g.Entries = slices.Delete(g.Entries, i, i+1)
	return nil
}

// SetPinned pins or unpins an entry. Only pinned entries appear on the panel.
func (l *Library) SetPinned(groupID, entryID string, pinned bool) error {
	g, err := l.Group(groupID)
	if err != nil {
		return err
	}
	i := g.indexOf(entryID)
	if i < 0 {
		return fmt.Errorf("pin entry %s: %w", entryID, ErrEntryNotFound)
	}
	g.Entries[i].Pinned = pinned
	return nil
}

// Pinned returns the pinned entries of a group in group order.
func (l *Library) Pinned(groupID string) ([]Entry, error) {
	g, err := l.Group(groupID)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range g.Entries {
		if e.Pinned {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReorderGroup rearranges the entries named by ids into that order. The
// listed entries fill the positions they already occupied between them, so
// entries not listed (unpinned ones, typically) keep their places. Unknown
// and repeated IDs are ignored.
func (l *Library) ReorderGroup(groupID string, ids []string) error {
	g, err := l.Group(groupID)
	if err != nil {
		return err
	}

	byID := make(map[string]Entry, len(g.Entries))
	for _, e := range g.Entries {
		byID[e.ID] = e
	}
	order := make([]Entry, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, e)
	}

	next := 0
	for i, e := range g.Entries {
		if seen[e.ID] {
			g.Entries[i] = order[next]
			next++
		}
	}
	return nil
}
