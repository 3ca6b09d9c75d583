// Package ctxvar implements context/versioned-variable operations over a
// pgraph.Graph: creating execution contexts, advancing a variable to a new
// version, naming temporaries, and recording context-level dependencies.
//
// pgraph owns node/edge *shapes* (ContextData, ContextVarData, Edge); ctxvar
// owns the *operations* that build and link them. This one-way dependency
// (ctxvar -> pgraph) is what lets pgraph stay ignorant of the context model
// it's being used to implement, the same way a traversal package depends on
// a graph package without the graph package knowing anything about
// traversal.
//
// Variable mutation never overwrites: AdvanceVarInCtx always appends a new
// ContextVar and links it to its predecessor with a Prev edge, so the graph
// keeps a full version history of every variable across every context it
// ever lived in.
package ctxvar
