// Package guestcart maintains the cart of an unauthenticated shopper as one
// JSON snapshot in a session-scoped key-value store.
//
// Every operation is fail-soft: storage failures and corrupt payloads are
// logged and degrade the cart to empty (reads) or drop the mutation (writes),
// but never surface to the caller. A broken cart must not block browsing.
package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
)

// Store persists a single cart snapshot under one session-scoped key.
// Read returns domain.ErrNotFound when no snapshot exists.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
}

// locks holds one mutex per cart key, shared process-wide. Handlers build a
// fresh Cart per request, so the lock must outlive any single Cart value for
// two concurrent requests on the same session to serialize.
var locks sync.Map // cart key -> *sync.Mutex

func lockFor(key string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Cart exposes the guest cart operations over an injected Store. The key
// names the snapshot the store is bound to (the session token); every Cart
// constructed for the same key shares one mutex, so the read-modify-write
// cycle stays single-writer no matter how many request handlers hold a Cart
// at once.
type Cart struct {
	store  Store
	logger *log.Logger
	mu     *sync.Mutex
}

func New(key string, store Store, logger *log.Logger) *Cart {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cart{store: store, logger: logger, mu: lockFor(key)}
}

// Items returns the persisted cart lines in insertion order. A missing key,
// unreadable store or unparseable payload all yield an empty cart.
func (c *Cart) Items(ctx context.Context) []domain.GuestCartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Replace persists items as the full cart snapshot, overwriting any prior
// value.
func (c *Cart) Replace(ctx context.Context, items []domain.GuestCartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.save(ctx, items)
}

// Add merges item into the cart: a line with the same identity tuple
// (product, variation, color, size) has its quantity increased by
// item.Quantity; otherwise item is appended at the end.
func (c *Cart) Add(ctx context.Context, item domain.GuestCartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(ctx)
	for i := range items {
		if items[i].SameLine(item) {
			items[i].Quantity += item.Quantity
			c.save(ctx, items)
			return
		}
	}
	c.save(ctx, append(items, item))
}

// UpdateQuantity overwrites the quantity of the line matching the identity
// tuple, removing the line entirely when quantity drops to zero or below.
// No matching line is a silent no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int, variationID, colorID, sizeID *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	probe := domain.GuestCartItem{ProductID: productID, VariationID: variationID, ColorID: colorID, SizeID: sizeID}
	items := c.load(ctx)
	for i := range items {
		if !items[i].SameLine(probe) {
			continue
		}
		if quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
		}
		c.save(ctx, items)
		return
	}
}

// Remove drops the line matching the identity tuple. By the uniqueness
// invariant at most one line can match.
func (c *Cart) Remove(ctx context.Context, productID string, variationID, colorID, sizeID *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	probe := domain.GuestCartItem{ProductID: productID, VariationID: variationID, ColorID: colorID, SizeID: sizeID}
	items := c.load(ctx)
	kept := items[:0]
	for _, it := range items {
		if !it.SameLine(probe) {
			kept = append(kept, it)
		}
	}
	c.save(ctx, kept)
}

// Clear deletes the persisted snapshot.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx); err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.logger.Printf("guest cart: clear error=%v", err)
	}
}

func (c *Cart) load(ctx context.Context) []domain.GuestCartItem {
	payload, err := c.store.Read(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Printf("guest cart: read error=%v", err)
		}
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var items []domain.GuestCartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		c.logger.Printf("guest cart: corrupt payload error=%v", err)
		return nil
	}
	return items
}

func (c *Cart) save(ctx context.Context, items []domain.GuestCartItem) {
	if items == nil {
		items = []domain.GuestCartItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Printf("guest cart: marshal error=%v", err)
		return
	}
	if err := c.store.Write(ctx, payload); err != nil {
		c.logger.Printf("guest cart: write error=%v", err)
	}
}
