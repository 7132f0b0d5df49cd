// Package types defines the product model, the cart Store interface,
// configuration, and the standard errors shared by the basket packages.
package types
