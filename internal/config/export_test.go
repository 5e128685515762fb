package config

// SetExecutableDir pins the directory used to resolve relative tunnel config
// paths and returns a restore func.
func SetExecutableDir(dir string) func() {
	previous := executableDir
	executableDir = func() (string, error) { return dir, nil }
	return func() { executableDir = previous }
}
