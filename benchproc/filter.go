// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"
	"strconv"

	"github.com/knapsack-heuristics/benchviz/benchproc/internal/parse"
)

// A Filter selects records, or the Keys of aggregated records.
//
// A nil or zero Filter matches everything.
type Filter struct {
	query string
	match filterFn
}

type filterFn func(g Getter) bool

// NewFilter constructs a filter from a boolean filter expression,
// such as "type:hybrid pop_size>=100". See the package documentation
// for the syntax.
//
// To create a filter that matches everything, pass "*" for query.
func NewFilter(query string) (*Filter, error) {
	q, err := parse.ParseFilter(query)
	if err != nil {
		return nil, err
	}

	var walk func(q parse.Filter) filterFn
	walk = func(q parse.Filter) filterFn {
		switch q := q.(type) {
		case *parse.FilterOp:
			subs := make([]filterFn, len(q.Exprs))
			for i, sub := range q.Exprs {
				subs[i] = walk(sub)
			}
			return filterOp(q.Op, subs)

		case *parse.FilterMatch:
			return func(g Getter) bool {
				v, ok := g.Get(q.Key)
				return ok && q.MatchString(v)
			}

		case *parse.FilterCompare:
			return func(g Getter) bool {
				v, ok := g.Get(q.Key)
				if !ok {
					return false
				}
				x, err := strconv.ParseFloat(v, 64)
				return err == nil && q.Compare(x)
			}
		}
		panic(fmt.Sprintf("unknown query node type %T", q))
	}
	return &Filter{query, walk(q)}, nil
}

func filterOp(op parse.Op, subs []filterFn) filterFn {
	switch op {
	case parse.OpNot:
		sub := subs[0]
		return func(g Getter) bool {
			return !sub(g)
		}

	case parse.OpAnd:
		return func(g Getter) bool {
			for _, sub := range subs {
				if !sub(g) {
					return false
				}
			}
			return true
		}

	case parse.OpOr:
		return func(g Getter) bool {
			for _, sub := range subs {
				if sub(g) {
					return true
				}
			}
			return false
		}
	}
	panic(fmt.Sprintf("unknown query op %v", op))
}

// Match reports whether g satisfies f. A field g doesn't have never
// matches a key:value or comparison term.
func (f *Filter) Match(g Getter) bool {
	if f == nil || f.match == nil {
		return true
	}
	return f.match(g)
}

// String returns the expression f was parsed from.
func (f *Filter) String() string {
	if f == nil || f.query == "" {
		return "*"
	}
	return f.query
}
