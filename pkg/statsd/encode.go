package statsd

import "strconv"

// encodeCounter formats a counter delta as a statsd value fragment, e.g. "5|c".
// The delta may be negative or of any magnitude.
func encodeCounter(delta int64) string {
	return strconv.FormatInt(delta, 10) + "|c"
}

// encodeTiming formats a duration in milliseconds as a statsd value fragment,
// e.g. "500|ms". Unit conversion and sign are the caller's responsibility.
func encodeTiming(ms int64) string {
	return strconv.FormatInt(ms, 10) + "|ms"
}

// encodeGauge formats a gauge reading as a statsd value fragment, e.g. "42.5|g".
func encodeGauge(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "|g"
}

// applySampleSuffix annotates an already-encoded value with the sample rate
// so the aggregator can extrapolate true volume, e.g. "1|c" -> "1|c|@0.1".
func applySampleSuffix(value string, rate float64) string {
	return value + "|@" + strconv.FormatFloat(rate, 'g', -1, 64)
}
