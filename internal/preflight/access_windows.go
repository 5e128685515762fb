//go:build windows

package preflight

import "os"

// checkAccess on Windows only confirms the directory can be listed; ACLs are
// not evaluated.
func checkAccess(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
