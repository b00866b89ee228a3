package metrics

import "time"

// OrderMetrics tracks the order flow of one order service instance.
type OrderMetrics struct {
	Created              Counter
	Rejected             Counter
	Confirmed            Counter
	Cancelled            Counter
	ReservationConflicts Counter
	Rollbacks            Counter
	CreateLatency        Latency
}

type OrderSnapshot struct {
	Created              uint64
	Rejected             uint64
	Confirmed            uint64
	Cancelled            uint64
	ReservationConflicts uint64
	Rollbacks            uint64
	AvgCreateLatency     time.Duration
}

func (m *OrderMetrics) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		Created:              m.Created.Load(),
		Rejected:             m.Rejected.Load(),
		Confirmed:            m.Confirmed.Load(),
		Cancelled:            m.Cancelled.Load(),
		ReservationConflicts: m.ReservationConflicts.Load(),
		Rollbacks:            m.Rollbacks.Load(),
		AvgCreateLatency:     m.CreateLatency.Average(),
	}
}
