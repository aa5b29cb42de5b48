package core

import (
	"os"
	"path/filepath"
)

// LoadState restores a previously serialized WmState from path if it
// exists, dropping any window not present in known (stale IDs left behind
// by a crash, or a client that closed during the reload). A successful
// restore deletes the file before returning, so a crash immediately after
// restart doesn't re-apply the same snapshot. If the file doesn't exist, a
// fresh WmState is built from cfgs. The returned bool reports whether a
// restore happened.
func LoadState(path string, cfgs []WorkspaceConfig, numScreens int, known map[Window]bool) (st *WmState, restored bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewWmState(cfgs, numScreens), false, nil
	}
	if err != nil {
		return nil, false, err
	}

	st = NewWmState(cfgs, numScreens)
	st.RestoreInto(string(data), known)

	if err := os.Remove(path); err != nil {
		return nil, false, err
	}
	return st, true, nil
}

// SaveState serializes st to path ahead of a Reload's self-exec, creating
// the containing directory if needed.
func SaveState(path string, st *WmState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(st.Serialize()), 0o600)
}
