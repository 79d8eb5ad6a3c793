package models

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot notice rendered on the next page of a session.
type FlashMessage struct {
	Category string
	Text     string
}
