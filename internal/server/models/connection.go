package models

// Connection is a directed edge meaning UserID has added ConnectionID as
// a payable counterparty. The edge is never mirrored automatically.
type Connection struct {
	UserID       int64
	ConnectionID int64
}
