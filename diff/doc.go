// Package diff compares two JSON trees: given two [tree.Handle] values and
// a [Mode] describing how strict a comparison to perform, [Compare] walks
// both trees in lockstep and reports an ordered list of [Difference]
// values.
//
// Differences come in four kinds: [Less] (present in expected, absent in
// actual), [More] (extra in actual), [Sort] (present in both but out of
// position under a strict-order mode), and [NotEqual] (a leaf value
// differs). [Mode] configures array and object order/additional-item
// strictness independently, plus whether numbers compare by textual
// declaration or by parsed value.
package diff
