package scenario

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/storage"
)

// DefaultPattern names result files from the onset and completion codes.
const DefaultPattern = "Answer_tc%s_tl%s.csv"

// Files maps every scenario to its result file.
type Files [numOnsets][numCompletions]string

// NewFiles fills the lookup table from a pattern taking the onset code and
// the completion code, in that order.
func NewFiles(pattern string) (Files, error) {
	var f Files
	seen := make(map[string]Key)
	for _, k := range All() {
		name := fmt.Sprintf(pattern, k.Onset.Code(), k.Completion.Code())
		// fmt reports missing, extra or mistyped verbs inline as "%!".
		if strings.Contains(name, "%!") {
			return Files{}, fmt.Errorf("scenario: pattern %q must take exactly two %%s verbs", pattern)
		}
		if prev, dup := seen[name]; dup {
			return Files{}, fmt.Errorf("scenario: %s and %s both map to %q", prev, k, name)
		}
		seen[name] = k
		f[k.Onset][k.Completion] = name
	}
	return f, nil
}

// Name returns the result file for k.
func (f *Files) Name(k Key) (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("%w: scenario %s", dataset.ErrSelectionOutOfRange, k)
	}
	return f[k.Onset][k.Completion], nil
}

// Resolver loads the result table of a scenario. It does not cache: each
// call reads and parses the file again.
type Resolver struct {
	store *storage.Store
	files Files
}

func NewResolver(st *storage.Store, files Files) *Resolver {
	return &Resolver{store: st, files: files}
}

func (r *Resolver) Files() Files { return r.files }

func (r *Resolver) Resolve(k Key) (*dataset.Table, error) {
	name, err := r.files.Name(k)
	if err != nil {
		return nil, err
	}
	return r.store.ReadTable(name)
}

// CheckAll resolves every scenario concurrently and fails on the first that
// does not load or has no rows.
func (r *Resolver) CheckAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, k := range All() {
		k := k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := r.Resolve(k)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", k, err)
			}
			if t.Rows() == 0 {
				name, _ := r.files.Name(k)
				return fmt.Errorf("scenario %s: %w", k, dataset.Unavailable(name, fmt.Errorf("%w: no rows", dataset.ErrMalformed)))
			}
			return nil
		})
	}
	return g.Wait()
}
