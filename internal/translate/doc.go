// Package translate turns a parsed DSL command sequence into drafting
// backend source code. Dispatch runs over a closed command enumeration, the
// active layer/color/linetype travel in an explicit per-call State value, and
// each statement is translated in isolation: one bad command is recorded and
// skipped, never aborting the rest of the document.
package translate
