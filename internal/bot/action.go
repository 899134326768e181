package bot

import (
	"strconv"
	"strings"
)

// Callback data arrives as flat strings like "buy_starter" or
// "confirm_payment_42". They are parsed once here into a closed set of
// action kinds and dispatched with a switch, instead of prefix-matching
// inside every handler.

type actionKind int

const (
	actionUnknown actionKind = iota
	actionShowProducts
	actionBackToMenu
	actionShowInfo
	actionShowPurchases
	actionInDevelopment
	actionViewProduct
	actionStartOrder

	// Admin-only actions carry the client id in the payload.
	actionConfirmPayment
	actionCancelOrder
	actionSendRecording
)

type action struct {
	kind      actionKind
	productID string
	clientID  int64
}

// adminOnly reports whether the action requires the admin identity.
func (a action) adminOnly() bool {
	switch a.kind {
	case actionConfirmPayment, actionCancelOrder, actionSendRecording:
		return true
	}
	return false
}

func parseCallback(data string) action {
	switch data {
	case "show_products":
		return action{kind: actionShowProducts}
	case "back_to_menu":
		return action{kind: actionBackToMenu}
	case "show_info":
		return action{kind: actionShowInfo}
	case "show_purchases":
		return action{kind: actionShowPurchases}
	case "product_in_development":
		return action{kind: actionInDevelopment}
	}

	if id, ok := strings.CutPrefix(data, "confirm_buy_"); ok && id != "" {
		return action{kind: actionStartOrder, productID: id}
	}
	if id, ok := strings.CutPrefix(data, "buy_"); ok && id != "" {
		return action{kind: actionViewProduct, productID: id}
	}
	if raw, ok := strings.CutPrefix(data, "confirm_payment_"); ok {
		return clientAction(actionConfirmPayment, raw)
	}
	if raw, ok := strings.CutPrefix(data, "cancel_order_"); ok {
		return clientAction(actionCancelOrder, raw)
	}
	if raw, ok := strings.CutPrefix(data, "send_recording_"); ok {
		return clientAction(actionSendRecording, raw)
	}
	return action{kind: actionUnknown}
}

func clientAction(kind actionKind, raw string) action {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return action{kind: actionUnknown}
	}
	return action{kind: kind, clientID: id}
}
