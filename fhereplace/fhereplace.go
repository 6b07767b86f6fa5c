// Package fhereplace is string replacement (C9 of the design): split on
// the old pattern, rejoin with new in between, then erase any content
// beyond the true resulting length. Grounded on original_source's
// server_key/replace.rs.
package fhereplace

import (
	"github.com/cryptlab/fhestrings/fheconcat"
	"github.com/cryptlab/fhestrings/fhepad"
	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhesplit"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// Replace returns a copy of haystack with every occurrence of old
// replaced by new.
func Replace(ops oracle.ServerOps, haystack fhestring.FheString, old fhepattern.Pattern, newValue fhestring.FheString) fhestring.FheString {
	return replaceUpTo(ops, haystack, old, newValue, fhesplit.MaxParts(len(haystack.Content)))
}

// ReplaceN returns a copy of haystack with at most n occurrences of old
// replaced, for n a clear- or encrypted-backed count bounded above by the
// clear nMax. The reverse-split convention (bounding the count from the
// split side, not the replace side) mirrors how SplitN itself bounds n:
// replacing the first n matches is exactly splitting into n+1 parts via
// fhesplit.SplitN and rejoining.
func ReplaceN(ops oracle.ServerOps, haystack fhestring.FheString, old fhepattern.Pattern, newValue fhestring.FheString, n fhestring.Length, nMax int) fhestring.FheString {
	nPlusOne := fhestring.AddScalar(ops, n, 1)
	split := fhesplit.SplitN(ops, haystack, old, nPlusOne, nMax+1)
	return rejoin(ops, split, newValue, haystack)
}

func replaceUpTo(ops oracle.ServerOps, haystack fhestring.FheString, old fhepattern.Pattern, newValue fhestring.FheString, maxParts int) fhestring.FheString {
	split := fhesplit.Split(ops, haystack, old)
	return rejoin(ops, split, newValue, haystack)
}

// rejoin concatenates every part of split with newValue interleaved, then
// erases the tail beyond the true result length — the number of
// replacements is numberParts-1 when numberParts != 0, 0 otherwise,
// exactly as replace.rs's cmux guards against underflowing an unsigned
// part count of zero.
//
// Each split part comes out of fheconcat.SubstringEncrypted tagged
// PadAnywhere: its live bytes sit at their original indices inside a
// full-capacity content vector, not compacted down to index 0. Concat just
// appends these sparse vectors, so the reconstruction's live bytes end up
// scattered at indices that bear no relation to the true result length.
// replace.rs's own erase_after caller guards exactly this — `match
// result.padding { None | Final => erase_after(...), _ =>
// erase_after(self.remove_initial_padding(&result), ...) }` — front-aligning
// before truncating by absolute index. PushPaddingToEnd is the general
// (non-contiguous-run) compaction that does the same job here.
func rejoin(ops oracle.ServerOps, split fhesplit.Result, newValue, haystack fhestring.FheString) fhestring.FheString {
	result := fhestring.New(nil, fhestring.PadNone, fhestring.ClearLength(0))
	totalLength := fhestring.ClearLength(0)
	numberReplacements := ops.Cmux(
		ops.ScalarNe(split.NumberParts, 0),
		ops.ScalarSub(split.NumberParts, 1),
		ops.TrivialEnc(0),
	)

	for _, part := range split.Parts {
		result = fheconcat.Concat(ops, result, part)
		result = fheconcat.Concat(ops, result, newValue)
		totalLength = fhestring.Add(ops, totalLength, part.Length)
	}
	totalLength = fhestring.Add(ops, totalLength, fhestring.MulByRadix(ops, newValue.Length, numberReplacements))

	compacted := result
	if result.Padding != fhestring.PadNone && result.Padding != fhestring.PadFinal {
		compacted = fhepad.PushPaddingToEnd(ops, result)
	}
	return EraseAfter(ops, compacted, totalLength)
}

// EraseAfter truncates (for a clear length) or obliviously zeroes (for an
// encrypted length) every content byte at or beyond resultLength,
// restoring the padding invariant after a reconstruction whose content
// vector may run longer than the true result.
func EraseAfter(ops oracle.ServerOps, s fhestring.FheString, resultLength fhestring.Length) fhestring.FheString {
	if n, ok := resultLength.Clear(); ok {
		content := s.Content
		if n < len(content) {
			content = content[:n]
		}
		out := make([]oracle.CT, len(content))
		copy(out, content)
		return fhestring.New(out, fhestring.PadNone, resultLength)
	}
	ec, _ := resultLength.Encrypted()
	content := make([]oracle.CT, len(s.Content))
	for i, c := range s.Content {
		beyond := ops.ScalarLe(ec, uint64(i))
		content[i] = ops.Cmux(beyond, ops.TrivialEnc(0), c)
	}
	padding := s.Padding
	if padding == fhestring.PadNone {
		padding = fhestring.PadFinal
	}
	return fhestring.New(content, padding, resultLength)
}
