// Package pkg provides the core libraries for reading, editing and writing
// MindMup maps.
//
// # Overview
//
// A MindMup map is a JSON document: a root idea whose children sit in an
// "ideas" object keyed by rank, plus a list of cross links addressed by idea
// id. The pkg directory splits the work into three areas:
//
//  1. Domain logic ([idea], [keyed], [attach]) - the in-memory idea tree
//  2. Wire formats ([mindmup], [outline]) - the MindMup JSON codec and a
//     TOML outline format for writing maps by hand
//  3. Infrastructure ([render], [cache], [store], [observability], [errors])
//
// # Architecture
//
// The typical data flow:
//
//	MindMup JSON / TOML outline
//	         ↓
//	    [mindmup] / [outline] (decode, validate, resolve links)
//	         ↓
//	    [idea] tree (edit, collapse, measure, link)
//	         ↓
//	    [mindmup] (assign ids, rebuild measurements config)
//	         ↓
//	    JSON, or DOT/SVG/PDF/PNG via [render]
//
// # Quick Start
//
// Build a tree and encode it:
//
//	t := idea.NewTree("Plan")
//	task := idea.NewNode("Write docs")
//	task.AddMeasure("cost", 3)
//	_ = t.Append(t.Root, task)
//
//	data, _ := mindmup.Marshal(t, mindmup.EncodeOptions{AutoIncrement: true})
//
// Decode it again:
//
//	t, err := mindmup.Unmarshal(data)
//
// # Main Packages
//
// [idea] - The idea tree. Nodes carry a title, an id, optional attributes
// (collapsed flag, style, attachment, measurements) and ordered children.
// Links are kept by node identity and resolved to wire ids on encode.
//
// [keyed] - An insertion-ordered map used for measurements and link sets.
//
// [attach] - Renders attachment content, such as HTML tables built from
// key/value data.
//
// [mindmup] - The wire codec. Decode validates the document, orders
// children by numeric rank, detects repeated ids and resolves links. Encode
// assigns ids (renumbering 1..N in pre-order when asked) and writes the
// measurements config.
//
// [outline] - A TOML outline format that builds trees by key and exports
// trees back to outlines.
//
// [render] - Graphviz DOT generation and conversion to SVG, PDF and PNG.
//
// [cache] - Render and normalize caches backed by files, Redis or nothing.
//
// [store] - Named map storage backed by memory, files or Redis.
//
// [observability] - Hooks for codec, cache and store events.
//
// [errors] - Error codes shared by the CLI and the HTTP API, and input
// validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                                  # All tests
//	go test ./pkg/mindmup/...                          # Specific package
//	go test -run Example                               # Examples only
//	MINDMUP_TEST_REDIS=localhost:6379 go test ./...    # Include Redis tests
//
// [idea]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/idea
// [keyed]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/keyed
// [attach]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/attach
// [mindmup]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/mindmup
// [outline]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/outline
// [render]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/mindmup/pkg/errors
package pkg
