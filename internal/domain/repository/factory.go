package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Wishlists() WishlistRepository
	Orders() OrderRepository
	Balances() BalanceRepository
	ReconcileJobs() ReconcileRepository
}
