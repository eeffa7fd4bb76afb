// Package mindmup converts idea trees to and from MindMup documents.
//
// # Overview
//
// A MindMup document is a nested JSON object. The root carries the format
// version and the cross links; every idea keys its children by rank:
//
//	{
//	  "id": 1,
//	  "title": "Project",
//	  "formatVersion": 2,
//	  "attr": {"measurements-config": ["A", "B"]},
//	  "ideas": {
//	    "1": {"id": 2, "title": "base1", "attr": {"collapsed": false, "measurements": {"A": "2", "B": "1"}}},
//	    "2": {"id": 3, "title": "idea2", "attr": {"collapsed": false}}
//	  },
//	  "links": [
//	    {"ideaIdFrom": 2, "ideaIdTo": 3, "attr": {"style": {"color": "#FF0000", "lineStyle": "dashed"}}}
//	  ]
//	}
//
// Ranks are the 1-based positions of children among their siblings and
// say nothing about ids. Decoding accepts any numeric rank, including the
// negative and fractional ranks the MindMup editor writes, and appends
// children in ascending numeric order.
//
// # Encoding
//
// [Encode] recomputes the measurements config, numbers the tree, serializes
// it and resolves links to wire ids. With [EncodeOptions].AutoIncrement
// every idea gets its pre-order rank as id (the root is 1); otherwise
// existing ids are kept and repeated ids fail with *idea.DuplicateIDError.
// Ideas without children are always written with collapsed set to false.
//
// # Decoding
//
// [Decode] rejects documents whose formatVersion is not 2, validates the
// structure with go-playground/validator (see [Validate]), rebuilds the tree
// with the ids found in the document, recomputes the measurements config
// and rebuilds the identity-keyed links. Structural problems are fatal;
// malformed measurements on an idea are logged and skipped.
//
// # Files and Bytes
//
// [ReadJSON] and [WriteJSON] work on streams of wire documents.
// [ImportJSON], [ExportJSON], [Marshal] and [Unmarshal] combine them with
// the codec:
//
//	t, err := mindmup.ImportJSON("plan.mup")
//	if err != nil {
//	    return err
//	}
//	return mindmup.ExportJSON(t, "plan.mup", mindmup.EncodeOptions{})
//
// # Errors
//
// [Code] maps codec errors to the application error codes of
// github.com/matzehuels/mindmup/pkg/errors for the CLI and the HTTP API.
package mindmup
