// Package cartstore provides the persistence backends behind cart.Registry.
package cartstore

import "github.com/junaidrashid-git/kataplum-api/cart"

var (
	_ cart.Snapshotter = (*GormCartStore)(nil)
	_ cart.Snapshotter = (*RedisCartStore)(nil)
)
