package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name   string
		miners *MinerCounts
		status Status
		text   string
		class  string
	}{
		{"no miner data", nil, StatusOffline, "Offline", "status-offline"},
		{"zero miners", &MinerCounts{Now: 0, Max: 10}, StatusOffline, "Offline", "status-offline"},
		{"below half of peak", &MinerCounts{Now: 3, Max: 10}, StatusWarning, "Warning", "status-warning"},
		{"exactly half of peak", &MinerCounts{Now: 5, Max: 10}, StatusOnline, "Online", "status-online"},
		{"healthy", &MinerCounts{Now: 8, Max: 10}, StatusOnline, "Online", "status-online"},
		{"no peak recorded", &MinerCounts{Now: 1, Max: 0}, StatusOnline, "Online", "status-online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(Snapshot{Miners: tt.miners})
			assert.Equal(t, tt.status, got)
			assert.Equal(t, tt.text, got.String())
			assert.Equal(t, tt.class, got.Class())
		})
	}
}
