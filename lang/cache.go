package lang

import (
	"bytes"
	"encoding/gob"
	"reflect"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/rinha/ast"
)

// Cache memoizes calls to purity-eligible closures, keyed by the identity
// of the closure body plus a structural fingerprint of the arguments.
// Purity here is the narrow spec.md definition: a closure body with no
// Print anywhere in it, transitively, and every argument fingerprintable
// (i.e. not itself a closure).
type Cache struct {
	entries sync.Map // cacheKey -> Value

	purity sync.Map // *ast.Term -> bool, memoized per closure body
}

// NewCache returns an empty memoization cache.
func NewCache() *Cache {
	return &Cache{}
}

type cacheKey uint64

// fingerprint is the gob-encodable, closure-free shape a Value reduces to
// for hashing. Closures have no fingerprint and make a call ineligible for
// memoization.
type fingerprint struct {
	Kind ValueKind
	Int  int32
	Str  string
	Bool bool
	Nest []fingerprint
}

func fingerprintOf(v Value) (fingerprint, bool) {
	switch v.Kind {
	case ValInt:
		return fingerprint{Kind: v.Kind, Int: v.Int}, true
	case ValStr:
		return fingerprint{Kind: v.Kind, Str: v.Str}, true
	case ValBool:
		return fingerprint{Kind: v.Kind, Bool: v.Bool}, true
	case ValTuple:
		first, ok := fingerprintOf(*v.First)
		if !ok {
			return fingerprint{}, false
		}

		second, ok := fingerprintOf(*v.Second)
		if !ok {
			return fingerprint{}, false
		}

		return fingerprint{Kind: v.Kind, Nest: []fingerprint{first, second}}, true
	default:
		return fingerprint{}, false
	}
}

// key builds the memoization key for calling the closure whose body is
// body with the given already-evaluated arguments. The second return value
// is false when any argument (or the body itself) makes this call
// ineligible for memoization.
func (c *Cache) key(body *ast.Term, args []Value) (cacheKey, bool) {
	if !c.isPure(body) {
		return 0, false
	}

	prints := make([]fingerprint, len(args))

	for i, a := range args {
		fp, ok := fingerprintOf(a)
		if !ok {
			return 0, false
		}

		prints[i] = fp
	}

	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(pointerIdentity(body))

	if err := enc.Encode(prints); err != nil {
		return 0, false
	}

	return cacheKey(xxh3.Hash(buf.Bytes())), true
}

// Get looks up a memoized result for calling the closure whose body is
// body with args.
func (c *Cache) Get(body *ast.Term, args []Value) (Value, bool) {
	k, ok := c.key(body, args)
	if !ok {
		return Value{}, false
	}

	v, ok := c.entries.Load(k)
	if !ok {
		return Value{}, false
	}

	val, ok := v.(Value)

	return val, ok
}

// Put stores a memoized result for calling the closure whose body is body
// with args. No-op when the call was ineligible for memoization.
func (c *Cache) Put(body *ast.Term, args []Value, result Value) {
	k, ok := c.key(body, args)
	if !ok {
		return
	}

	c.entries.Store(k, result)
}

// isPure reports whether body contains no Print node anywhere in its
// tree, memoizing the result per body pointer since the same closure body
// is typically called many times (e.g. in recursion).
func (c *Cache) isPure(body *ast.Term) bool {
	if body == nil {
		return true
	}

	if v, ok := c.purity.Load(body); ok {
		pure, _ := v.(bool)

		return pure
	}

	pure := !containsPrint(body)
	c.purity.Store(body, pure)

	return pure
}

func containsPrint(t *ast.Term) bool {
	if t == nil {
		return false
	}

	if t.Kind == ast.KindPrint {
		return true
	}

	children := [...]*ast.Term{
		t.Value, t.Body, t.Callee, t.Condition, t.Then, t.Otherwise,
		t.Left, t.Right, t.First, t.Second, t.Inner,
	}

	for _, c := range children {
		if containsPrint(c) {
			return true
		}
	}

	for _, a := range t.Arguments {
		if containsPrint(a) {
			return true
		}
	}

	return false
}

// pointerIdentity captures a closure body's identity for cache keying:
// the same *ast.Term is reused across every call to the same closure, so
// its address is a stable, cheap fingerprint.
func pointerIdentity(t *ast.Term) uint64 {
	return uint64(reflect.ValueOf(t).Pointer())
}
