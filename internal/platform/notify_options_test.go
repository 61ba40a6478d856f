package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName {
		t.Fatalf("appName = %q", o.appName())
	}
	if o.timeoutMillis() != 5000 {
		t.Fatalf("timeout = %d", o.timeoutMillis())
	}
	o = Options{AppName: "Beach", Timeout: 1500 * time.Millisecond}
	if o.appName() != "Beach" || o.timeoutMillis() != 1500 {
		t.Fatalf("overrides ignored: %q %d", o.appName(), o.timeoutMillis())
	}
}
