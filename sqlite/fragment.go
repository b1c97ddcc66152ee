package sqlite

import (
	"context"

	"github.com/mzalewski/fragset"
)

// Compile-time interface verification.
var _ fragset.FragmentIndex = (*FragmentIndex)(nil)

// FragmentIndex implements fragset.FragmentIndex using SQLite.
type FragmentIndex struct {
	db *DB
}

// NewFragmentIndex creates a new FragmentIndex.
func NewFragmentIndex(db *DB) *FragmentIndex {
	return &FragmentIndex{db: db}
}

// RecordFragment inserts or replaces the record for a fragment ID. Replace
// semantics mirror the store: identical HTML re-collected overwrites its
// earlier record.
func (s *FragmentIndex) RecordFragment(ctx context.Context, rec *fragset.FragmentRecord) error {
	if rec.FragmentID == "" {
		return fragset.Errorf(fragset.EINVALID, "fragment ID required")
	}
	if rec.FragmentType == "" {
		return fragset.Errorf(fragset.EINVALID, "fragment type required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO fragments
			(fragment_id, run_id, fragment_type, source_url, is_valid, score, negative_type, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.FragmentID, rec.RunID, rec.FragmentType, rec.SourceURL,
		boolToInt(rec.IsValid), rec.Score, rec.NegativeType, rec.StoredAt)

	return err
}

// CountByType tallies records grouped by fragment type, sorted by type name.
func (s *FragmentIndex) CountByType(ctx context.Context) ([]fragset.TypeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fragment_type, COUNT(*)
		FROM fragments
		GROUP BY fragment_type
		ORDER BY fragment_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []fragset.TypeCount
	for rows.Next() {
		var tc fragset.TypeCount
		if err := rows.Scan(&tc.TypeName, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// CountByVerdict tallies valid records and negatives per negative type.
func (s *FragmentIndex) CountByVerdict(ctx context.Context) (int, []fragset.TypeCount, error) {
	var valid int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM fragments WHERE is_valid = 1
	`).Scan(&valid)
	if err != nil {
		return 0, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT negative_type, COUNT(*)
		FROM fragments
		WHERE is_valid = 0
		GROUP BY negative_type
		ORDER BY negative_type
	`)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var negatives []fragset.TypeCount
	for rows.Next() {
		var tc fragset.TypeCount
		if err := rows.Scan(&tc.TypeName, &tc.Count); err != nil {
			return 0, nil, err
		}
		negatives = append(negatives, tc)
	}
	return valid, negatives, rows.Err()
}

// DeleteFragment removes the record for a fragment ID.
func (s *FragmentIndex) DeleteFragment(ctx context.Context, fragmentID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM fragments WHERE fragment_id = ?
	`, fragmentID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fragset.Errorf(fragset.ENOTFOUND, "fragment not found")
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
