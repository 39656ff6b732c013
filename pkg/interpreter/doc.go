// Package interpreter runs tokenized Firic scripts. Each source line is turned
// into synthesized statements by the dispatcher, then either run against the
// shared symbol tables or deferred into the function currently being
// defined. The first reported error makes the run halt for good.
package interpreter
