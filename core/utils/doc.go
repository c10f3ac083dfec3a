// Package utils provides common utility functions for the loot-manager application.
// It includes the loose value coercions used when reading pack records, where the
// same field may arrive as a number, a numeric string, or not at all.
package utils
