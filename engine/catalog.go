// engine/catalog.go
package engine

import (
	"fmt"
	"sort"

	gatekeeper_errors "github.com/fleetgate/gatekeeper/errors"
	"github.com/fleetgate/gatekeeper/model"
)

// Catalog is the immutable, load-time registry of section permissions. Build
// one with LoadCatalog; there is no mutation API afterwards, so a Catalog is
// safe to share across goroutines and multiple catalogs (per tenant, per
// test) can coexist.
type Catalog struct {
	permissions []model.SectionPermission
	byID        map[string]int
}

// LoadCatalog validates the definitions and constructs a catalog. It fails
// on duplicate ids and on conditions carrying unrecognized enum values, so
// invalid operators never reach evaluation.
func LoadCatalog(definitions []model.SectionPermission) (*Catalog, error) {
	byID := make(map[string]int, len(definitions))
	permissions := make([]model.SectionPermission, len(definitions))
	copy(permissions, definitions)

	for i, p := range permissions {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: permission at index %d has empty id", gatekeeper_errors.ErrInvalidPermissionData, i)
		}
		if p.Page == "" || p.Section == "" {
			return nil, fmt.Errorf("%w: permission %q has empty page or section", gatekeeper_errors.ErrInvalidPermissionData, p.ID)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", gatekeeper_errors.ErrDuplicatePermissionID, p.ID)
		}
		for _, c := range p.Conditions {
			if !c.Type.Valid() {
				return nil, fmt.Errorf("%w: permission %q has unknown condition type %q", gatekeeper_errors.ErrInvalidPermissionData, p.ID, c.Type)
			}
			if !c.Operator.Valid() {
				return nil, fmt.Errorf("%w: permission %q has unknown operator %q", gatekeeper_errors.ErrInvalidPermissionData, p.ID, c.Operator)
			}
			if !c.BlockType.Valid() {
				return nil, fmt.Errorf("%w: permission %q has unknown block type %q", gatekeeper_errors.ErrInvalidPermissionData, p.ID, c.BlockType)
			}
		}
		byID[p.ID] = i
	}

	// Presort by priority descending. The stable sort keeps insertion order
	// as the tiebreaker, so FindCandidates only has to filter.
	sort.SliceStable(permissions, func(i, j int) bool {
		return permissions[i].Priority > permissions[j].Priority
	})
	for i, p := range permissions {
		byID[p.ID] = i
	}

	return &Catalog{permissions: permissions, byID: byID}, nil
}

// FindCandidates returns every permission governing the requested location,
// wildcard-aware, ordered by priority descending. An empty result is valid
// and means no rule governs this location.
func (c *Catalog) FindCandidates(page, section string) []model.SectionPermission {
	var candidates []model.SectionPermission
	for _, p := range c.permissions {
		if p.Matches(page, section) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// Get returns the permission with the given id.
func (c *Catalog) Get(id string) (model.SectionPermission, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.SectionPermission{}, false
	}
	return c.permissions[i], true
}

// Permissions returns a copy of every rule in evaluation order.
func (c *Catalog) Permissions() []model.SectionPermission {
	out := make([]model.SectionPermission, len(c.permissions))
	copy(out, c.permissions)
	return out
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.permissions)
}
