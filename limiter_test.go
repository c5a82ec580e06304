package panelexport

import "testing"

func TestExportLimiterAllowsUnderLimit(t *testing.T) {
	l := NewExportLimiter(3)
	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d denied under the limit", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("attempt over the limit allowed")
	}
}

func TestExportLimiterIsolatesIPs(t *testing.T) {
	l := NewExportLimiter(1)
	if !l.Allow("10.0.0.1") {
		t.Fatal("first IP denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("second IP denied by first IP's usage")
	}
	if l.Allow("10.0.0.1") {
		t.Error("first IP allowed past its limit")
	}
}
