// Package emit owns everything about the generated target source: the
// drawing conventions (layer names, dimension style), small Python literal
// formatting helpers, and the assembly of per-statement code blocks into one
// complete ezdxf script with a fixed preamble and a closing save call.
package emit
