// Package scope carries the active company restriction through request
// contexts and applies it to every query and write against company-owned
// tables. Binding is explicit: platform-level code that genuinely needs to
// see across companies must opt in with Unscoped rather than relying on a
// missing binding.
package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type contextKey struct{}

var scopeKey contextKey

// ErrNoCompany is returned when a company-scoped operation runs on a context
// that was neither bound to a company nor explicitly marked unscoped.
var ErrNoCompany = errors.New("no company bound to context")

// Scope describes how company-owned queries on a context are restricted.
type Scope struct {
	companyID uuid.UUID
	unscoped  bool
}

// Bind returns a context whose company-owned operations are restricted to
// the given company. The inbound boundary (middleware) calls this once per
// request before any service method runs.
func Bind(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, scopeKey, Scope{companyID: companyID})
}

// Unscoped returns a context that deliberately bypasses company filtering.
// Only platform-admin and signup code paths should use it.
func Unscoped(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey, Scope{unscoped: true})
}

// FromContext extracts the scope bound to ctx. A context with no binding at
// all yields ErrNoCompany, so a forgotten Bind surfaces as an error instead
// of a cross-company read.
func FromContext(ctx context.Context) (Scope, error) {
	s, ok := ctx.Value(scopeKey).(Scope)
	if !ok {
		return Scope{}, ErrNoCompany
	}
	return s, nil
}

// CompanyID returns the bound company id, or false when the scope is the
// unscoped escape hatch.
func (s Scope) CompanyID() (uuid.UUID, bool) {
	if s.unscoped {
		return uuid.Nil, false
	}
	return s.companyID, true
}

// Filter appends the company predicate to a query that already has a WHERE
// clause, numbering the new placeholder after the existing args. Unscoped
// contexts leave the query untouched.
func (s Scope) Filter(query string, args []any) (string, []any) {
	if s.unscoped {
		return query, args
	}
	query = fmt.Sprintf("%s AND company_id = $%d", query, len(args)+1)
	return query, append(args, s.companyID)
}

// FilterAs is Filter for queries where the scoped table carries an alias.
func (s Scope) FilterAs(query string, args []any, alias string) (string, []any) {
	if s.unscoped {
		return query, args
	}
	query = fmt.Sprintf("%s AND %s.company_id = $%d", query, alias, len(args)+1)
	return query, append(args, s.companyID)
}

// Stamp fills in the company id on a new row. An id the caller set
// explicitly is never overwritten.
func (s Scope) Stamp(companyID uuid.UUID) uuid.UUID {
	if companyID != uuid.Nil || s.unscoped {
		return companyID
	}
	return s.companyID
}
