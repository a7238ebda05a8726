// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements an incremental, single-pass JSON parser for
// memory-constrained settings.
//
// # Parsing
//
// A Parser consumes input one byte at a time and reports the structure of
// the input to a Listener as soon as each element is complete. Input may be
// supplied in pieces of any size, split at any position:
//
//	p := jstream.New(listener, &jstream.Options{BufferSize: 256})
//	for chunk := range chunks {
//	   switch st := p.Feed(chunk); st {
//	   case jstream.Ok:
//	      continue // more input required
//	   case jstream.EndOfDocument:
//	      return nil
//	   default:
//	      return p.Err()
//	   }
//	}
//
// The parser never allocates while parsing. It holds the text of the current
// object key and value in a token buffer of fixed size, and tracks open
// objects and arrays in a stack of fixed depth. Input with a longer key and
// value, or deeper nesting, is reported as BufferFull or StackFull.
//
// To parse a complete document from an io.Reader, call Parse:
//
//	if err := p.Parse(input); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Status
//
// Every call to Feed or FeedByte reports a Status. Ok means the input was
// consumed and more is required. EndOfDocument means the outermost object or
// array was closed. Cancelled means a listener asked to stop. All other
// values report malformed input or exhausted resources; they are terminal,
// and the parser must be Reset before it is reused. The parser does not try
// to recover from errors.
//
// # Listeners
//
// The Listener interface accepts events from a Parser:
//
//	Method       | Reports
//	------------ | ------------------------------------------------
//	StartElement | a complete value, or the start of an object or array
//	EndElement   | the end of an object or array
//
// Each method is passed an *Element giving the type, nesting level, key,
// value, and position of the element among its siblings. The Element is only
// valid for the duration of the call; the listener must copy any data it
// needs to retain. A listener method may return false to stop the parser.
//
// The Printer type is a Listener that writes an indented outline of the
// events it receives.
//
// The parser accepts strict JSON only: a document is a single object or
// array, and comments and trailing commas are rejected.
package jstream
