package driver

import "testing"

func TestSpawnDetachedRejectsEmptyArgv(t *testing.T) {
	if err := spawnDetached(nil); err == nil {
		t.Fatal("expected an error for an empty argv")
	}
}

func TestSpawnDetachedStartsChild(t *testing.T) {
	if err := spawnDetached([]string{"true"}); err != nil {
		t.Skipf("true not available in this environment: %v", err)
	}
}
