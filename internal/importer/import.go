package importer

import (
	"context"

	"github.com/yusi/shuqian/internal/model"
)

// Target is where imported bookmarks are added.
type Target interface {
	HasURL(url string) bool
	Add(ctx context.Context, d model.Draft) (*model.Bookmark, error)
}

// Result summarizes an import run.
type Result struct {
	Added   int
	Skipped int
	Failed  int
	Errors  []error
}

// Import adds every draft whose URL the target does not already have.
// Drafts missing a title or URL are counted as skipped. Failures do not
// stop the run.
func Import(ctx context.Context, target Target, drafts []model.Draft) Result {
	var res Result
	for _, d := range drafts {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, err)
			break
		}
		if !d.Complete() || target.HasURL(d.URL) {
			res.Skipped++
			continue
		}

		b, err := target.Add(ctx, d)
		switch {
		case err != nil:
			res.Failed++
			res.Errors = append(res.Errors, err)
		case b == nil:
			res.Skipped++
		default:
			res.Added++
		}
	}
	return res
}
