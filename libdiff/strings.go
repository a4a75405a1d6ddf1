package libdiff

import (
	"errors"
	"fmt"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrPatch = errors.New("text patch does not apply")

// Patch returns a text patch which turns from into to, in the format of
// GNU diff's unidiff with character offsets.
func Patch(from, to string) string {
	dmp := diffpatch.New()
	return dmp.PatchToText(dmp.PatchMake(from, to))
}

// ApplyPatch applies a patch made by Patch to text. Every hunk must
// apply.
func ApplyPatch(text, patch string) (string, error) {
	dmp := diffpatch.New()
	ps, err := dmp.PatchFromText(patch)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, ok := dmp.PatchApply(ps, text)
	for i := range ok {
		if !ok[i] {
			return "", fmt.Errorf("%w: hunk %d", ErrPatch, i)
		}
	}
	return res, nil
}
