package model

// DeliveryKind discriminates the two monotonic per-user message marks.
type DeliveryKind string

const (
	KindDelivered DeliveryKind = "delivered"
	KindRead      DeliveryKind = "read"
)
