// Package commands contains the write operations of the marketplace:
// placing orders, moving them through the status machine, dispatching
// couriers and maintaining pharmacy catalogs. Every handler follows the same
// shape: validate the command, open a unit of work, mutate aggregates,
// commit, then publish notifications best-effort.
package commands

import (
	"context"

	"medmarket/internal/core/ports"
)

// Unit of Work interfaces scoped per handler. A handler names exactly the
// repositories it touches, so a test double only has to provide those.
type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// CourierRepoFactory provides the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW covers commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order-scoped unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW covers commands that only touch the catalog.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates inventory-scoped unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// OrderInventoryUoW covers commands that move an order and deduct stock
	// in the same transaction.
	OrderInventoryUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
	}

	// OrderInventoryUoWFactory creates unit of work instances spanning
	// orders and inventory.
	OrderInventoryUoWFactory interface {
		Create() OrderInventoryUoW
	}

	// OrderCourierUoW covers dispatch: it reads couriers and active orders
	// and writes the dispatched order, all in one transaction.
	OrderCourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderCourierUoWFactory creates unit of work instances spanning orders
	// and couriers.
	OrderCourierUoWFactory interface {
		Create() OrderCourierUoW
	}
)
