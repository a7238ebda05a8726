// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package nest implements a fixed-capacity stack of open JSON containers.
package nest

// A Frame describes one open container.
type Frame struct {
	Object bool // true for an object, false for an array
	Index  int  // number of direct children completed so far
}

// A Stack is a bounded stack of frames. Its storage is allocated once, when
// the stack is constructed, and never grows.
type Stack struct {
	frames []Frame
}

// New constructs an empty stack that holds at most depth frames.
// It panics if depth < 1.
func New(depth int) *Stack {
	if depth < 1 {
		panic("nest: depth must be positive")
	}
	return &Stack{frames: make([]Frame, 0, depth)}
}

// Push adds f to the top of the stack. It reports false without modifying
// the stack if the stack is already full.
func (s *Stack) Push(f Frame) bool {
	if len(s.frames) == cap(s.frames) {
		return false
	}
	s.frames = append(s.frames, f)
	return true
}

// Pop removes and returns the top frame. It panics if the stack is empty.
func (s *Stack) Pop() Frame {
	n := len(s.frames)
	if n == 0 {
		panic("nest: pop of empty stack")
	}
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

// Peek returns a pointer to the top frame, which the caller may modify in
// place. It panics if the stack is empty.
func (s *Stack) Peek() *Frame {
	n := len(s.frames)
	if n == 0 {
		panic("nest: peek of empty stack")
	}
	return &s.frames[n-1]
}

// Len reports the number of frames on the stack.
func (s *Stack) Len() int { return len(s.frames) }

// Cap reports the maximum number of frames the stack can hold.
func (s *Stack) Cap() int { return cap(s.frames) }

// IsEmpty reports whether the stack has no frames.
func (s *Stack) IsEmpty() bool { return len(s.frames) == 0 }

// Clear discards all frames without releasing storage.
func (s *Stack) Clear() { s.frames = s.frames[:0] }
