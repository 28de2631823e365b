// Package coords parses G25-style coordinate sheets into ordered collections
// of labeled vectors.
//
// 🚀 Input format
//
//	One population (or sample) per line:
//
//	  Label,c1,c2,...,cD
//	  Yamnaya_Samara:I0357,0.1233,0.1397,0.0563,...
//
//	Lines are trimmed; blank lines are skipped. Every line in a sheet must
//	carry the same number of coordinates D.
//
// ✨ Modes
//   - Plain (default): each line becomes one vector keyed by its full label.
//     A repeated label overwrites the earlier values but keeps its original
//     position.
//   - Aggregated (WithAggregate): the label is split on the first group
//     separator (":" by default) and all rows sharing the prefix are averaged
//     coordinate-wise into one vector keyed by the prefix. Sums are
//     accumulated in row order and divided once at the end.
//
// ⚠️ Errors
//
//	Loading is all-or-nothing: a malformed line (*ParseError, matching
//	ErrParse) or a coordinate-count disagreement (ErrDimensionMismatch)
//	aborts the whole sheet and no collection is returned.
//
// ⚙️ Usage:
//
//	coll, err := coords.Load(text, coords.WithAggregate())
//	for _, label := range coll.Labels() { ... }
package coords
