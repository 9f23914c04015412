package cart

import "errors"

// User-visible messages stored in the engine's error state
const (
	MsgAuthRequired    = "Authentication required"
	MsgInvalidQuantity = "Quantity must be a positive integer"
	MsgNetworkError    = "Network error occurred"

	MsgAddFailed      = "Failed to add item to cart"
	MsgUpdateFailed   = "Failed to update item quantity"
	MsgRemoveFailed   = "Failed to remove item from cart"
	MsgClearFailed    = "Failed to clear cart"
	MsgCheckoutFailed = "Failed to place order"
)

var (
	// ErrAuthRequired indicates a mutation was attempted without a session token
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidQuantity indicates a quantity that is not a positive integer
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)
