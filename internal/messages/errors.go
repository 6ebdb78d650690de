package messages

import "errors"

var (
	ErrMessageNotFound   = errors.New("messages: message not found")
	ErrMissingFields     = errors.New("messages: recipient and body are required")
	ErrRecipientNotFound = errors.New("messages: recipient not found in this tenant")
)
