package errors

var (
	// Domain errors — used in usecase/repository
	ErrMessageNotFound      = NotFound("message not found")
	ErrRoomNotFound         = NotFound("room not found")
	ErrEmptyMessage         = InvalidArg("message content or attachment is required")
	ErrInvalidMessageType   = InvalidArg("message type must be text, image, file, audio or video")
	ErrInvalidDeleteScope   = InvalidArg("delete scope must be 'me' or 'everyone'")
	ErrNotMessageSender     = Forbidden("only the sender can delete a message for everyone")
	ErrNoteNotFound         = NotFound("note not found")
	ErrInvalidSubscription  = InvalidArg("push subscription requires endpoint, p256dh and auth")
	ErrSubscriptionNotFound = NotFound("no push subscription for user")
)

func ErrSendFailed(cause error) error {
	return Wrap(CodeInternal, "failed to send message", cause)
}

func ErrReminderSweepFailed(cause error) error {
	return Wrap(CodeInternal, "reminder sweep failed", cause)
}
