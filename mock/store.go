package mock

import (
	"context"

	"github.com/mzalewski/fragset"
)

var _ fragset.FragmentStore = (*FragmentStore)(nil)

// FragmentStore is a mock implementation of fragset.FragmentStore.
type FragmentStore struct {
	StoreFn func(ctx context.Context, frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error)
}

func (s *FragmentStore) Store(ctx context.Context, frag *fragset.Fragment, verdict fragset.Verdict) (*fragset.Artifacts, error) {
	return s.StoreFn(ctx, frag, verdict)
}

var _ fragset.NegativeReclassifier = (*NegativeReclassifier)(nil)

// NegativeReclassifier is a mock implementation of fragset.NegativeReclassifier.
type NegativeReclassifier struct {
	ReclassifyFn func(ctx context.Context) (*fragset.ReclassifyReport, error)
}

func (r *NegativeReclassifier) Reclassify(ctx context.Context) (*fragset.ReclassifyReport, error) {
	return r.ReclassifyFn(ctx)
}

var _ fragset.FragmentIndex = (*FragmentIndex)(nil)

// FragmentIndex is a mock implementation of fragset.FragmentIndex.
type FragmentIndex struct {
	RecordFragmentFn func(ctx context.Context, rec *fragset.FragmentRecord) error
	CountByTypeFn    func(ctx context.Context) ([]fragset.TypeCount, error)
	CountByVerdictFn func(ctx context.Context) (int, []fragset.TypeCount, error)
	DeleteFragmentFn func(ctx context.Context, fragmentID string) error
}

func (i *FragmentIndex) RecordFragment(ctx context.Context, rec *fragset.FragmentRecord) error {
	return i.RecordFragmentFn(ctx, rec)
}

func (i *FragmentIndex) CountByType(ctx context.Context) ([]fragset.TypeCount, error) {
	return i.CountByTypeFn(ctx)
}

func (i *FragmentIndex) CountByVerdict(ctx context.Context) (int, []fragset.TypeCount, error) {
	return i.CountByVerdictFn(ctx)
}

func (i *FragmentIndex) DeleteFragment(ctx context.Context, fragmentID string) error {
	return i.DeleteFragmentFn(ctx, fragmentID)
}
