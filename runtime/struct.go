package runtime

// Struct is the contract between the stream runtime and the parser types
// built on it. A parser type is constructed empty, then Read pulls its
// fields from the stream:
//
//	page := ogg.NewPage()
//	err := page.Read(stream, nil, page)
//
// parent is the node that owns this one, or nil at the top level. root is
// the top of the parse tree; implementations treat a nil root as "self".
// The whole tree built from one parse shares one stream, and Read leaves
// the cursor at the end of the bytes the node consumed, which is how
// sibling nodes compose. Parent and root are back-references only; a node
// never mutates them after its prologue.
type Struct interface {
	Read(io *Stream, parent, root interface{}) error
}
