// Package fragments accumulates the top-level source fragments produced
// during a generation pass.
package fragments

import (
	"strings"

	"github.com/xplshn/bgen/pkg/names"
)

type Bucket int

const (
	Includes Bucket = iota
	Variables
	Declarations
	Setups
	Functions
	UserFunctions
	BucketCount
)

func (b Bucket) String() string {
	switch b {
	case Includes:
		return "includes"
	case Variables:
		return "variables"
	case Declarations:
		return "declarations"
	case Setups:
		return "setups"
	case Functions:
		return "functions"
	case UserFunctions:
		return "user-functions"
	}
	return "bucket?"
}

// FunctionName is replaced with the allocated helper name in templates
// passed to AddFunction.
const FunctionName = "{{FUNCTION_NAME}}"

// Allocator is the part of the name allocator helper functions need.
type Allocator interface {
	Distinct(raw string, ns names.Namespace) string
}

type entry struct {
	key  string
	text string
}

type bucket struct {
	index   map[string]int
	entries []entry
}

// Store holds one keyed bucket per Bucket. The zero value is ready to use.
type Store struct {
	buckets   [BucketCount]bucket
	funcNames map[string]string
}

// Put writes text under key. The first write always succeeds; later writes
// only replace the text when overwrite is set, keeping the key's original
// position. It reports whether anything was written.
func (s *Store) Put(b Bucket, key, text string, overwrite bool) bool {
	bk := &s.buckets[b]
	if bk.index == nil {
		bk.index = make(map[string]int)
	}
	if i, ok := bk.index[key]; ok {
		if !overwrite {
			return false
		}
		bk.entries[i].text = text
		return true
	}
	bk.index[key] = len(bk.entries)
	bk.entries = append(bk.entries, entry{key, text})
	return true
}

func (s *Store) Get(b Bucket, key string) (string, bool) {
	bk := &s.buckets[b]
	i, ok := bk.index[key]
	if !ok {
		return "", false
	}
	return bk.entries[i].text, true
}

func (s *Store) Has(b Bucket, key string) bool {
	_, ok := s.buckets[b].index[key]
	return ok
}

// Delete removes key from b and reports whether it was present.
func (s *Store) Delete(b Bucket, key string) bool {
	bk := &s.buckets[b]
	i, ok := bk.index[key]
	if !ok {
		return false
	}
	bk.entries = append(bk.entries[:i], bk.entries[i+1:]...)
	delete(bk.index, key)
	for j := i; j < len(bk.entries); j++ {
		bk.index[bk.entries[j].key] = j
	}
	return true
}

// Drain returns the texts of b in first-insertion order.
func (s *Store) Drain(b Bucket) []string {
	bk := &s.buckets[b]
	out := make([]string, len(bk.entries))
	for i, e := range bk.entries {
		out[i] = e.text
	}
	return out
}

func (s *Store) Len(b Bucket) int { return len(s.buckets[b].entries) }

func (s *Store) ResetAll() {
	s.buckets = [BucketCount]bucket{}
	s.funcNames = nil
}

// AddFunction adds a generated helper once per preferred name. On the first
// request a distinct name is allocated and substituted for FunctionName in
// template; every request returns that name.
func (s *Store) AddFunction(preferred, template string, alloc Allocator) string {
	if name, ok := s.funcNames[preferred]; ok {
		return name
	}
	if s.funcNames == nil {
		s.funcNames = make(map[string]string)
	}
	name := alloc.Distinct(preferred, names.Generated)
	s.funcNames[preferred] = name
	s.Put(Functions, preferred, strings.ReplaceAll(template, FunctionName, name), false)
	return name
}
