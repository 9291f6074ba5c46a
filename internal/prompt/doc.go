// Package prompt turns an arbitrary client JSON body into a
// domain.ResolvedRequest: it decides which text is sent upstream, whether the
// body is forwarded verbatim, and which verified Gemini model serves it.
//
// Two body shapes are accepted, checked in this order:
//
//	{"text": "<prompt>", "model": "<optional>"}
//	{"contents": [{"role": "user", "parts": [{"text": "<prompt>"}]}]}
//
// A body that has a "text" key always takes the first branch, even when it
// also has "contents". The second shape is forwarded upstream unchanged.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// logging and no package state beyond the static model tables.
package prompt
