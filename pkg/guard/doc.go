// Package guard provides ready-made domain.Guard implementations: field
// equality checks, boolean combinators and HIL expressions such as
// `state == "draft" && comments < 10` evaluated over a resource's fields.
package guard
