package models

// Snapshot holds one consistent fetch of the three record store collections.
// A reconciliation pass only runs against a fully populated snapshot.
type Snapshot struct {
	Tenants  []Tenant
	Rooms    []Room
	Payments []PaymentRecord
}
