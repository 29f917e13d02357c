package lang

import (
	"context"
	"fmt"
	"reflect"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/xform/transform"
)

// Cache memoizes built transform trees by expression text. Trees are
// immutable, so one cached tree may be handed to any number of callers.
// The zero value is ready to use.
type Cache struct {
	entries sync.Map // uint64 -> *cacheEntry
}

// cacheEntry builds its tree at most once.
type cacheEntry struct {
	once  sync.Once
	input string
	node  *transform.Node
	err   error
}

// NewCache returns an empty cache.
func NewCache() *Cache { return new(Cache) }

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

// Reset discards every cached expression.
func (c *Cache) Reset() { c.entries.Clear() }

// key combines the expression hash with the engine configuration and, for
// a [Versioner] registry, the registry version.
func (c *Cache) key(input string, eng *Engine) uint64 {
	seed := eng.scope

	if v, ok := eng.registry.(Versioner); ok {
		seed = xxh3.HashStringSeed(strconv.FormatUint(v.Version(), 10), seed)
	}

	return xxh3.HashStringSeed(input, seed)
}

// scopeOf identifies the configuration that decides what an expression
// builds: registry, evaluator and depth limit. Every [ExprEvaluator] is
// equivalent, so engines using one may share entries.
func scopeOf(eng *Engine) uint64 {
	var eval any = eng.eval
	if _, ok := eng.eval.(*ExprEvaluator); ok {
		eval = "expr"
	}

	return xxh3.HashString(fmt.Sprintf("%d|%T|%v|%T|%v",
		eng.maxDepth, eng.registry, identity(eng.registry), eval, identity(eval)))
}

// identity returns v itself for comparable values and its address for
// pointers, so two distinct instances never share a scope.
func identity(v any) any {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return fmt.Sprintf("%p", v)
	default:
		return v
	}
}

func (c *Cache) load(
	ctx context.Context,
	eng *Engine,
	input string,
) (*transform.Node, error) {
	key := c.key(input, eng)

	value, hit := c.entries.LoadOrStore(key, &cacheEntry{input: input})

	entry, ok := value.(*cacheEntry)
	if !ok || entry.input != input {
		// hash collision; build without caching
		eng.logger.TraceContext(ctx, "cache bypass",
			slog.String("key", strconv.FormatUint(key, 36)))

		return eng.build(ctx, input, 0)
	}

	eng.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", strconv.FormatUint(key, 36)),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		entry.node, entry.err = eng.build(ctx, input, 0)
	})

	return entry.node, entry.err
}
