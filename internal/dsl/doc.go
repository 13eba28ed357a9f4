// Package dsl implements the front end of the drafting-language compiler:
// tokenization of Lisp-style command statements, line-oriented parsing of a
// document into ordered Command values, and a cheap structural pre-flight
// validator that runs without building any commands.
package dsl
