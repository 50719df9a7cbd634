package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmr-tortoise/arbor/internal/model"
)

// Registry is the ordered list of worktree records. Insertion order is
// preserved on disk but carries no meaning; listings sort by creation
// time instead.
type Registry struct {
	records []model.WorktreeRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of all records in insertion order.
func (r *Registry) Records() []model.WorktreeRecord {
	out := make([]model.WorktreeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Add appends a record after checking the registry invariants:
// id and path are unique globally, branch is unique per project root.
func (r *Registry) Add(rec model.WorktreeRecord) error {
	for i := range r.records {
		existing := &r.records[i]
		if existing.ID == rec.ID {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("registry already contains a record with id %s", rec.ID))
		}
		if existing.Path == rec.Path {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("registry already contains a record for path %s", rec.Path))
		}
		if existing.ProjectRoot == rec.ProjectRoot && existing.Branch == rec.Branch {
			return model.NewCLIError(model.ExitDuplicateBranch,
				fmt.Sprintf("a worktree for branch '%s' already exists in this project", rec.Branch))
		}
	}
	r.records = append(r.records, rec)
	return nil
}

// Remove deletes the record with the given id. Returns true if a record
// was removed.
func (r *Registry) Remove(id string) bool {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true
		}
	}
	return false
}

// Update replaces the record with the same id. Returns true if a record
// was found and replaced.
func (r *Registry) Update(rec model.WorktreeRecord) bool {
	for i := range r.records {
		if r.records[i].ID == rec.ID {
			r.records[i] = rec
			return true
		}
	}
	return false
}

// FindByBranch returns the record matching branch within projectRoot.
func (r *Registry) FindByBranch(projectRoot, branch string) (model.WorktreeRecord, bool) {
	for i := range r.records {
		if r.records[i].ProjectRoot == projectRoot && r.records[i].Branch == branch {
			return r.records[i], true
		}
	}
	return model.WorktreeRecord{}, false
}

// ByProject returns the records whose project root matches root,
// newest first.
func (r *Registry) ByProject(root string) []model.WorktreeRecord {
	var out []model.WorktreeRecord
	for i := range r.records {
		if r.records[i].ProjectRoot == root {
			out = append(out, r.records[i])
		}
	}
	sortNewestFirst(out)
	return out
}

// SortedByNewest returns all records sorted by creation time, newest first.
func (r *Registry) SortedByNewest() []model.WorktreeRecord {
	out := r.Records()
	sortNewestFirst(out)
	return out
}

// Resolve finds the record for branch. When projectRoot is non-empty the
// search is scoped to that project, otherwise it spans all projects.
//
// Resolution is exact-match first. If no exact match exists, a branch
// that is a substring of exactly one record's branch resolves to that
// record; zero or multiple substring matches fail with NotFound so a
// partial name never silently picks the wrong worktree.
func (r *Registry) Resolve(projectRoot, branch string) (model.WorktreeRecord, error) {
	scope := r.records
	if projectRoot != "" {
		scope = nil
		for i := range r.records {
			if r.records[i].ProjectRoot == projectRoot {
				scope = append(scope, r.records[i])
			}
		}
	}

	for i := range scope {
		if scope[i].Branch == branch {
			return scope[i], nil
		}
	}

	var partial []model.WorktreeRecord
	for i := range scope {
		if strings.Contains(scope[i].Branch, branch) {
			partial = append(partial, scope[i])
		}
	}

	switch len(partial) {
	case 1:
		return partial[0], nil
	case 0:
		return model.WorktreeRecord{}, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("worktree for branch '%s' not found", branch))
	default:
		names := make([]string, len(partial))
		for i, rec := range partial {
			names[i] = rec.Branch
		}
		return model.WorktreeRecord{}, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("branch '%s' matches multiple worktrees: %s", branch, strings.Join(names, ", ")))
	}
}

func sortNewestFirst(records []model.WorktreeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
