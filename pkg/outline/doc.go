// Package outline builds idea trees from TOML outlines.
//
// # Overview
//
// An outline is a human-editable description of a mind map:
//
//	title = "Project"
//
//	[[idea]]
//	title = "base1"
//	key = "b1"
//	color = "#ffcc00"
//	measurements = { A = "2", B = 1 }
//	table = { owner = "platform" }
//
//	  [[idea.idea]]
//	  title = "detail"
//
//	[[idea]]
//	title = "idea2"
//
//	[[link]]
//	from = "b1"
//	to = "idea2"
//	line_style = "solid"
//
// Ideas are keyed by key, or by title when no key is given. Entries that
// repeat a key under the same parent are merged into one idea. Links name
// their endpoints by key; the root is named by the outline title.
//
// A table is rendered with [attach.HTMLTable] and stored as the idea's
// attachment, after the note if both are given.
//
// # Round Trip
//
// [FromTree] and [Write] turn a tree back into an outline. Attachments are
// HTML and are not exported.
package outline
