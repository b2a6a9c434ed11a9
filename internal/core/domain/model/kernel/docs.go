// Package kernel contains the shared value objects of the fulfillment domain:
// identifiers, money and geographic coordinates. Value objects are immutable,
// validated at construction and safe for concurrent use.
package kernel
