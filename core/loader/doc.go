// Package loader registers HTTP features with the Fiber app.
//
// A feature is a self-contained group of routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers the catalog and loot features with a Manager and
// calls LoadAll once. Disabled features are skipped, for instance both
// features stay off while no pack root is configured.
package loader
