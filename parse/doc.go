// Package parse implements the SISL grammar of spec §4.C: a
// recursive-descent parser over package token's token stream that
// builds an *ir.Node document. One production, one function; no
// backtracking is needed because every token's type determines its
// production unambiguously one token ahead.
package parse
