// Package middleware groups the Fiber middleware used by the start command.
//
//   - auth: rejects requests without the configured X-API-Key. An empty key
//     leaves the API open, which is the default for local use.
//   - rayid: assigns every request a UUID RayID, stores it in the context
//     locals and echoes it in the response headers so log lines and responses
//     can be matched.
//
// RayID is registered first so that auth failures are traced as well.
package middleware
