// Package temple implements the tenant catalog: creation with the
// subdomain uniqueness guard, allow-listed partial updates, the
// identifier lookup backing the resolution middleware, and the public
// discovery search over active temples.
package temple
