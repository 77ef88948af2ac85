package dashboard

// SamplePayload returns a well-formed summary payload as decoded from JSON.
func SamplePayload() map[string]any {
	return map[string]any{
		"worker_id": "proxy-1",
		"version":   "6.22.0",
		"kind":      "proxy",
		"algo":      "rx/0",
		"uptime":    90061.0,
		"hashrate": map[string]any{
			"total": []any{1234.5, 1200.0, 1100.0, 1000.0, 900.0, 800.0},
		},
		"miners":  map[string]any{"now": 8.0, "max": 10.0},
		"workers": 5.0,
		"upstreams": map[string]any{
			"active": 2.0, "sleep": 1.0, "error": 0.0, "total": 3.0, "ratio": 4.0,
		},
		"results": map[string]any{
			"accepted":     80.0,
			"rejected":     20.0,
			"invalid":      1.0,
			"expired":      2.0,
			"latency":      45.0,
			"hashes_total": 123456789.0,
			"avg_time":     12.0,
		},
		"resources": map[string]any{
			"memory": map[string]any{"total": 4.0 * (1 << 30), "free": 1.0 * (1 << 30)},
		},
		"connection": map[string]any{"total": 1500.0},
	}
}
