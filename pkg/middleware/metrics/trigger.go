package metrics

import "time"

// ObserveTrigger records one provider call. It matches relay.ObserveFunc.
func ObserveTrigger(outcome string, d time.Duration) {
	triggerTotal.WithLabelValues(outcome).Inc()
	triggerDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
